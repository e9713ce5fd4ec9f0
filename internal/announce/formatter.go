package announce

import (
	"fmt"
	"strings"
	"time"

	"starfall-gacha/internal/announce/platforms"
)

const (
	colorUltra     = 0xFFB347
	colorAdventure = 0x3BA55D
	colorDive      = 0x5865F2

	defaultFooter = "starfall gacha"
)

// FormatMessage builds the platform-neutral message for one announcement.
// Unknown kinds report !ok and are skipped rather than delivered half-built.
func FormatMessage(ann Announcement) (platforms.Message, bool) {
	who := ann.Username
	if who == "" {
		who = "A traveler"
	}
	msg := platforms.Message{
		Timestamp: eventTimestamp(ann.At),
		Footer:    defaultFooter,
	}

	switch ann.Kind {
	case KindUltraDrop:
		msg.Title = "✨ Ultra Drop"
		msg.Content = fmt.Sprintf("%s pulled %s", who, ann.ItemName)
		msg.Description = fmt.Sprintf("**%s** pulled **%s**!", who, ann.ItemName)
		msg.Color = colorUltra
		msg.Fields = []platforms.Field{
			{Name: "Item", Value: ann.ItemName, Inline: true},
			{Name: "Rarity", Value: strings.ToUpper(string(ann.Rarity)), Inline: true},
		}
		if ann.BannerName != "" {
			msg.Fields = append(msg.Fields, platforms.Field{Name: "Banner", Value: ann.BannerName, Inline: true})
		}
	case KindAdventureClear:
		msg.Title = "Expedition Cleared"
		msg.Content = fmt.Sprintf("%s cleared an expedition (+%d)", who, ann.Reward)
		msg.Description = fmt.Sprintf("**%s** cleared an expedition and earned **%d** gems.", who, ann.Reward)
		msg.Color = colorAdventure
		if ann.Summary != "" {
			msg.Fields = append(msg.Fields, platforms.Field{Name: "Party", Value: ann.Summary, Inline: false})
		}
	case KindDiveRecord:
		msg.Title = "New Dive Record"
		msg.Content = fmt.Sprintf("%s set a dive record: %d", who, ann.Score)
		msg.Description = fmt.Sprintf("**%s** set a new dive record of **%d**.", who, ann.Score)
		msg.Color = colorDive
		msg.Fields = []platforms.Field{
			{Name: "Score", Value: fmt.Sprintf("%d", ann.Score), Inline: true},
			{Name: "Reward", Value: fmt.Sprintf("%d", ann.Reward), Inline: true},
		}
	default:
		return platforms.Message{}, false
	}
	return msg, true
}

func eventTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
