package catalog

import "github.com/PizzaHomicide/nplay/internal/protocol"

var defaultClips = []Clip{
	{
		Title:       "Google DASH Car",
		URL:         "http://yt-dash-mse-test.commondatastorage.googleapis.com/media/car-20120827-manifest.mpd",
		Type:        protocol.ClipTypeDash,
		Poster:      "resources/car.jpg",
		Description: "This is clip with DASH content. User can choose desired video/audio representation",
		Subtitles: []SubtitleTrack{
			{File: "./subs/sample_cyrilic_utf8.srt"},
		},
	},
	{
		Title:       "Google DASH encrypted",
		URL:         "http://yt-dash-mse-test.commondatastorage.googleapis.com/media/oops_cenc-20121114-signedlicenseurl-manifest.mpd",
		Type:        protocol.ClipTypeDash,
		Poster:      "resources/oops.jpg",
		Description: "This is clip with DASH content with DRM. User can choose desired video/audio representation",
	},
	{
		Title:       "Big Buck Bunny mp4",
		URL:         "http://distribution.bbb3d.renderfarming.net/video/mp4/bbb_sunflower_1080p_30fps_normal.mp4",
		Type:        protocol.ClipTypeURL,
		Poster:      "resources/bunny.jpg",
		Description: "This is clip played directly from URL",
		Subtitles: []SubtitleTrack{
			{File: "./subs/sample_cyrilic.srt", Encoding: "windows-1251"},
			{File: "./subs/sample_cyrilic_utf8.srt"},
		},
	},
	{
		Title:       "HEVC Single Resolution Multi-Rate",
		URL:         "http://dash.akamaized.net/dash264/TestCasesHEVC/1a/1/TOS_OnDemand_HEVC_MultiRate.mpd",
		Type:        protocol.ClipTypeDash,
		Poster:      "resources/tos-poster.jpg",
		Description: "http://testassets.dashif.org/#testvector/list",
	},
	{
		Title:       "HEVC Multi-Resolution Multi-Rate",
		URL:         "http://dash.akamaized.net/dash264/TestCasesHEVC/2a/1/TOS_OnDemand_HEVC_MultiRes.mpd",
		Type:        protocol.ClipTypeDash,
		Poster:      "resources/tos-poster.jpg",
		Description: "http://testassets.dashif.org/#testvector/list",
	},
}

// Default returns the built-in catalog
func Default() *Catalog {
	return &Catalog{clips: append([]Clip(nil), defaultClips...)}
}
