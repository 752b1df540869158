package text

import (
	"fmt"
	"hash/fnv"
	"math"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/enescakir/emoji"
	"github.com/lucasb-eyer/go-colorful"
)

const (
	Ellipsis = "…"
)

var (
	EmojiOpenBook      = emoji.OpenBook.String()
	EmojiClosedBook    = emoji.ClosedBook.String()
	EmojiLibrary       = emoji.Books.String()
	EmojiPicture       = emoji.FramedPicture.String()
	EmojiWarning       = emoji.Warning.String()
	EmojiQuestionmark  = emoji.QuestionMark.String()
	EmojiStoryModified = emoji.SpiralNotepad.String()
)

var (
	spineColorHashSalt uint32 = 6969420
	// NOTE: changing these dimensions changes the colour every existing title
	// maps to
	spineColors = colorGrid(4, 4)
)

// Return the time in a human-readable format relative to now.
func RelativeTime(then time.Time) string {
	return relativeTime(then, time.Now())
}

func relativeTime(then, now time.Time) string {
	ago := now.Sub(then)
	if ago < time.Minute {
		return "just now"
	} else if ago < humanize.Week {
		return humanize.CustomRelTime(then, now, "ago", "from now", magnitudes)
	}
	return then.Format("02 Jan 2006 15:04 MST")
}

// Magnitudes for relative time.
var magnitudes = []humanize.RelTimeMagnitude{
	{D: time.Second, Format: "now", DivBy: time.Second},
	{D: 2 * time.Second, Format: "1 second %s", DivBy: 1},
	{D: time.Minute, Format: "%d seconds %s", DivBy: time.Second},
	{D: 2 * time.Minute, Format: "1 minute %s", DivBy: 1},
	{D: time.Hour, Format: "%d minutes %s", DivBy: time.Minute},
	{D: 2 * time.Hour, Format: "1 hour %s", DivBy: 1},
	{D: humanize.Day, Format: "%d hours %s", DivBy: time.Hour},
	{D: 2 * humanize.Day, Format: "1 day %s", DivBy: 1},
	{D: humanize.Week, Format: "%d days %s", DivBy: humanize.Day},
	{D: 2 * humanize.Week, Format: "1 week %s", DivBy: 1},
	{D: humanize.Month, Format: "%d weeks %s", DivBy: humanize.Week},
	{D: 2 * humanize.Month, Format: "1 month %s", DivBy: 1},
	{D: humanize.Year, Format: "%d months %s", DivBy: humanize.Month},
	{D: 18 * humanize.Month, Format: "1 year %s", DivBy: 1},
	{D: 2 * humanize.Year, Format: "2 years %s", DivBy: 1},
	{D: humanize.LongTime, Format: "%d years %s", DivBy: humanize.Year},
	{D: math.MaxInt64, Format: "a long while %s", DivBy: 1},
}

// FileSummary is the size and age of a story file as shown in the library.
func FileSummary(size int64, modified time.Time) string {
	if modified.IsZero() {
		return humanize.Bytes(uint64(size))
	}
	return fmt.Sprintf("%s %s", humanize.Bytes(uint64(size)), RelativeTime(modified))
}

// SpineColor returns the background colour for a book spine and a
// foreground colour readable on top of it. The same title always gets the
// same colours.
func SpineColor(title string) (bg string, fg string) {
	hasher := fnv.New32a()
	hasher.Write([]byte(title))
	hash := hasher.Sum32() + spineColorHashSalt

	colorRangeX := len(spineColors)
	colorRangeY := len(spineColors[0])
	idx := int(hash % uint32(colorRangeX*colorRangeY))
	bg = spineColors[idx/colorRangeY][idx%colorRangeY]

	c, err := colorful.Hex(bg)
	if err != nil {
		return bg, "#ffffff"
	}
	if _, _, l := c.Hcl(); l > 0.6 {
		return bg, "#1a1a1a"
	}
	return bg, "#f2f2f2"
}

func colorGrid(xSteps, ySteps int) [][]string {
	x0y0, _ := colorful.Hex("#F25D94")
	x1y0, _ := colorful.Hex("#EDFF82")
	x0y1, _ := colorful.Hex("#643AFF")
	x1y1, _ := colorful.Hex("#14F9D5")

	x0 := make([]colorful.Color, ySteps)
	for i := range x0 {
		x0[i] = x0y0.BlendLuv(x0y1, float64(i)/float64(ySteps))
	}

	x1 := make([]colorful.Color, ySteps)
	for i := range x1 {
		x1[i] = x1y0.BlendLuv(x1y1, float64(i)/float64(ySteps))
	}

	grid := make([][]string, ySteps)
	for x := 0; x < ySteps; x++ {
		y0 := x0[x]
		grid[x] = make([]string, xSteps)
		for y := 0; y < xSteps; y++ {
			grid[x][y] = y0.BlendLuv(x1[x], float64(y)/float64(xSteps)).Hex()
		}
	}

	return grid
}
