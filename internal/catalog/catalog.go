// Package catalog holds the ordered list of clips the menu offers.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/PizzaHomicide/nplay/internal/protocol"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
	"golang.org/x/text/encoding/htmlindex"
	"gopkg.in/yaml.v3"
)

// ErrEmpty is returned when a catalog has no clips
var ErrEmpty = errors.New("catalog has no clips")

// SubtitleTrack is an external subtitle file offered for a clip
type SubtitleTrack struct {
	File     string `yaml:"file"`
	Encoding string `yaml:"encoding,omitempty"` // Empty means UTF-8
}

// Clip is a single entry in the catalog
type Clip struct {
	Title       string
	URL         string
	Type        protocol.ClipType
	Poster      string
	Description string

	DRMLicenseURL           string
	DRMKeyRequestProperties map[string]string

	Subtitles []SubtitleTrack
}

// LoadRequest builds the request that opens this clip.  subtitle is the 1-based track index chosen in the menu, 0 or
// an index the clip does not have loads no external subtitles.
func (c Clip) LoadRequest(subtitle int) protocol.LoadRequest {
	req := protocol.LoadRequest{
		Type:                    c.Type,
		URL:                     c.URL,
		DRMLicenseURL:           c.DRMLicenseURL,
		DRMKeyRequestProperties: c.DRMKeyRequestProperties,
	}
	if track, ok := c.Subtitle(subtitle); ok {
		req.Subtitle = track.File
		req.Encoding = track.Encoding
	}
	return req
}

// Subtitle returns the 1-based subtitle track
func (c Clip) Subtitle(index int) (SubtitleTrack, bool) {
	if index < 1 || index > len(c.Subtitles) {
		return SubtitleTrack{}, false
	}
	return c.Subtitles[index-1], true
}

// Catalog is an immutable, ordered list of clips indexed modulo its length
type Catalog struct {
	clips []Clip
}

// New validates clips and wraps them in a catalog
func New(clips []Clip) (*Catalog, error) {
	c := &Catalog{clips: append([]Clip(nil), clips...)}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks every clip in the catalog
func (c *Catalog) Validate() error {
	if len(c.clips) == 0 {
		return ErrEmpty
	}
	var errs []error
	for i, clip := range c.clips {
		if err := validateClip(clip); err != nil {
			errs = append(errs, fmt.Errorf("clip %d (%q): %w", i, clip.Title, err))
		}
	}
	return errors.Join(errs...)
}

func validateClip(clip Clip) error {
	if clip.Title == "" {
		return errors.New("title is required")
	}
	if clip.URL == "" {
		return errors.New("url is required")
	}
	if clip.Type != protocol.ClipTypeURL && clip.Type != protocol.ClipTypeDash {
		return fmt.Errorf("invalid clip type %d", int(clip.Type))
	}
	for i, track := range clip.Subtitles {
		if track.File == "" {
			return fmt.Errorf("subtitle %d has no file", i+1)
		}
		if track.Encoding == "" {
			continue
		}
		if _, err := htmlindex.Get(track.Encoding); err != nil {
			return fmt.Errorf("subtitle %d: unsupported encoding %q: %w", i+1, track.Encoding, err)
		}
	}
	return nil
}

// Len returns the number of clips
func (c *Catalog) Len() int {
	return len(c.clips)
}

// Clips returns a copy of all clips in order
func (c *Catalog) Clips() []Clip {
	return append([]Clip(nil), c.clips...)
}

// Index wraps i into the range of the catalog
func (c *Catalog) Index(i int) int {
	n := len(c.clips)
	return ((i % n) + n) % n
}

// At returns the clip at i modulo the catalog length.  Negative indices wrap from the end.
func (c *Catalog) At(i int) Clip {
	return c.clips[c.Index(i)]
}

// Neighbours returns the clips either side of i along with i itself, as the carousel shows them
func (c *Catalog) Neighbours(i int) (prev, centre, next Clip) {
	return c.At(i - 1), c.At(i), c.At(i + 1)
}

// Match is a search hit
type Match struct {
	Index    int
	Clip     Clip
	Distance int
}

// Search fuzzy matches query against clip titles, closest first.  An empty query matches nothing.
func (c *Catalog) Search(query string) []Match {
	if query == "" {
		return nil
	}
	titles := lo.Map(c.clips, func(clip Clip, _ int) string { return clip.Title })
	ranks := fuzzy.RankFindNormalizedFold(query, titles)
	sort.Stable(ranks)

	return lo.Map(ranks, func(r fuzzy.Rank, _ int) Match {
		return Match{Index: r.OriginalIndex, Clip: c.clips[r.OriginalIndex], Distance: r.Distance}
	})
}

type yamlClip struct {
	Title                   string            `yaml:"title"`
	URL                     string            `yaml:"url"`
	Type                    string            `yaml:"type"`
	Poster                  string            `yaml:"poster,omitempty"`
	Description             string            `yaml:"description,omitempty"`
	DRMLicenseURL           string            `yaml:"drm_license_url,omitempty"`
	DRMKeyRequestProperties map[string]string `yaml:"drm_key_request_properties,omitempty"`
	Subtitles               []SubtitleTrack   `yaml:"subtitles,omitempty"`
}

type yamlCatalog struct {
	Clips []yamlClip `yaml:"clips"`
}

// Load reads a catalog from a YAML file.  An empty path returns the built-in catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML catalog document
func Parse(data []byte) (*Catalog, error) {
	var doc yamlCatalog
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	clips := make([]Clip, 0, len(doc.Clips))
	for i, yc := range doc.Clips {
		clipType, err := protocol.ParseClipType(yc.Type)
		if err != nil {
			return nil, fmt.Errorf("clip %d (%q): %w", i, yc.Title, err)
		}
		clips = append(clips, Clip{
			Title:                   yc.Title,
			URL:                     yc.URL,
			Type:                    clipType,
			Poster:                  yc.Poster,
			Description:             yc.Description,
			DRMLicenseURL:           yc.DRMLicenseURL,
			DRMKeyRequestProperties: yc.DRMKeyRequestProperties,
			Subtitles:               yc.Subtitles,
		})
	}
	return New(clips)
}

// Marshal encodes the catalog in the format Parse reads
func (c *Catalog) Marshal() ([]byte, error) {
	doc := yamlCatalog{
		Clips: lo.Map(c.clips, func(clip Clip, _ int) yamlClip {
			return yamlClip{
				Title:                   clip.Title,
				URL:                     clip.URL,
				Type:                    clip.Type.String(),
				Poster:                  clip.Poster,
				Description:             clip.Description,
				DRMLicenseURL:           clip.DRMLicenseURL,
				DRMKeyRequestProperties: clip.DRMKeyRequestProperties,
				Subtitles:               clip.Subtitles,
			}
		}),
	}
	return yaml.Marshal(doc)
}
