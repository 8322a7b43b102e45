// Package panel derives the support-chat metrics panel from aggregated
// inputs: metric cards, a performance classification and per-unit
// statistics. Build is pure; rendering lives in the tui packages.
package panel

import "github.com/theirongolddev/chatpulse/internal/model"

// Token names a color role. Themes resolve tokens to concrete colors.
type Token string

const (
	TokenBlue    Token = "blue"
	TokenGreen   Token = "green"
	TokenYellow  Token = "yellow"
	TokenOrange  Token = "orange"
	TokenRed     Token = "red"
	TokenMagenta Token = "magenta"
	TokenCyan    Token = "cyan"
)

// Slot identifies a card position.
type Slot int

const (
	SlotMessages Slot = iota
	SlotResponseTime
	SlotResolved
	SlotAdmins
	SlotSatisfaction
)

// Identity is the fixed look of a slot.
type Identity struct {
	Icon  string
	Color Token
}

// identities is indexed by Slot.
var identities = [...]Identity{
	SlotMessages:     {Icon: "✉", Color: TokenBlue},
	SlotResponseTime: {Icon: "◷", Color: TokenOrange},
	SlotResolved:     {Icon: "✔", Color: TokenGreen},
	SlotAdmins:       {Icon: "◉", Color: TokenMagenta},
	SlotSatisfaction: {Icon: "★", Color: TokenYellow},
}

// IdentityOf returns the static icon and color of a slot.
func IdentityOf(s Slot) Identity {
	if s < 0 || int(s) >= len(identities) {
		return Identity{}
	}
	return identities[s]
}

// Card is one formatted metric tile.
type Card struct {
	Slot  Slot   `json:"slot"`
	Label string `json:"label"`
	Value string `json:"value"`
	Icon  string `json:"icon"`
	Color Token  `json:"color"`
}

// Performance is the response-time panel.
type Performance struct {
	Title     string  `json:"title"`
	Subtitle  string  `json:"subtitle"`
	Tier      Tier    `json:"tier"`
	TierLabel string  `json:"tier_label"`
	TierColor Token   `json:"tier_color"`
	Fill      float64 `json:"fill"`
	BarColor  Token   `json:"bar_color"`
}

// Stat is one labeled integer in the statistics panel. Display is Value
// grouped for the number locale.
type Stat struct {
	Label   string `json:"label"`
	Value   int64  `json:"value"`
	Display string `json:"display"`
}

// Statistics is the derived per-unit panel.
type Statistics struct {
	Title            string `json:"title"`
	MessagesPerAdmin Stat   `json:"messages_per_admin"`
	ResolvedPerDay   Stat   `json:"resolved_per_day"`
}

// Layout is the complete derived panel.
type Layout struct {
	Cards       []Card      `json:"cards"`
	Performance Performance `json:"performance"`
	Statistics  Statistics  `json:"statistics"`
}

// Build derives the panel layout from in. It has no failure modes.
func Build(in model.MetricsInput, opts Options) Layout {
	opts = opts.normalized()
	labels := LabelsFor(opts.Language)
	f := newFormatter(opts.numberTag(), labels)
	perAdmin := MessagesPerAdmin(in.TotalMessages, in.ActiveAdmins)
	perDay := ResolvedPerDay(in.ResolvedChats, opts.WindowDays)

	return Layout{
		Cards:       buildCards(in, labels, f),
		Performance: buildPerformance(in.AverageResponseTime, labels, opts.Clamp),
		Statistics: Statistics{
			Title: labels.StatisticsTitle,
			MessagesPerAdmin: Stat{
				Label:   labels.MessagesPerAdmin,
				Value:   perAdmin,
				Display: f.grouped(perAdmin),
			},
			ResolvedPerDay: Stat{
				Label:   labels.ResolvedPerDay,
				Value:   perDay,
				Display: f.grouped(perDay),
			},
		},
	}
}

func buildCards(in model.MetricsInput, labels Labels, f formatter) []Card {
	cards := make([]Card, 0, len(identities))
	add := func(s Slot, label, value string) {
		id := identities[s]
		cards = append(cards, Card{Slot: s, Label: label, Value: value, Icon: id.Icon, Color: id.Color})
	}

	add(SlotMessages, labels.TotalMessages, f.grouped(in.TotalMessages))
	add(SlotResponseTime, labels.AverageResponseTime, f.minutes(in.AverageResponseTime))
	add(SlotResolved, labels.ResolvedChats, f.grouped(in.ResolvedChats))
	add(SlotAdmins, labels.ActiveAdmins, f.raw(in.ActiveAdmins))
	if in.CustomerSatisfaction != nil {
		add(SlotSatisfaction, labels.Satisfaction, f.percent(*in.CustomerSatisfaction))
	}
	return cards
}

func buildPerformance(minutes float64, labels Labels, mode ClampMode) Performance {
	tier := Classify(minutes)
	return Performance{
		Title:     labels.PerformanceTitle,
		Subtitle:  labels.ResponseTime,
		Tier:      tier,
		TierLabel: labels.Tiers[tier],
		TierColor: tier.Color(),
		Fill:      FillFraction(minutes, mode),
		BarColor:  tier.Color(),
	}
}
