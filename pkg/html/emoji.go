package html

// emojis maps :alias: shorthands to their glyphs.
//
//nolint:gochecknoglobals // Read-only lookup table.
var emojis = map[string]string{
	"+1":                 "👍",
	"-1":                 "👎",
	"100":                "💯",
	"bug":                "🐛",
	"check":              "✔️",
	"clap":               "👏",
	"coffee":             "☕",
	"confused":           "😕",
	"cry":                "😢",
	"eyes":               "👀",
	"fire":               "🔥",
	"grin":               "😁",
	"grinning":           "😀",
	"heart":              "❤️",
	"heavy_check_mark":   "✔️",
	"hourglass":          "⌛",
	"information_source": "ℹ️",
	"joy":                "😂",
	"laughing":           "😆",
	"memo":               "📝",
	"no_entry":           "⛔",
	"ok_hand":            "👌",
	"pencil":             "📝",
	"pray":               "🙏",
	"question":           "❓",
	"rainbow":            "🌈",
	"rocket":             "🚀",
	"see_no_evil":        "🙈",
	"smile":              "😄",
	"smiley":             "😃",
	"sparkles":           "✨",
	"star":               "⭐",
	"sunny":              "☀️",
	"tada":               "🎉",
	"thinking":           "🤔",
	"thumbsdown":         "👎",
	"thumbsup":           "👍",
	"warning":            "⚠️",
	"wave":               "👋",
	"wink":               "😉",
	"x":                  "❌",
	"zap":                "⚡",
}

// Emoji returns the glyph for alias and whether it is known.
func Emoji(alias string) (string, bool) {
	glyph, ok := emojis[alias]
	return glyph, ok
}
