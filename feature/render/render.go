package render

import (
	"fmt"
	"html"
	"strconv"
	"strings"
	"time"

	"raid-status-bot/core/config"
	"raid-status-bot/feature/raids"

	"github.com/ncruces/go-strftime"
)

// Names resolves ids to display names. *names.Resolver implements it.
type Names interface {
	Species(id int) string
	Move(id int) string
	RaidLevel(level int, plural bool) string
}

// Section holds the raids of one query. Grouped channels get one section per
// configured level; flat channels get a single section.
type Section struct {
	Level int
	Raids []raids.Raid
}

// Renderer turns raids into status message text.
type Renderer struct {
	names     Names
	templates config.Templates
	format    config.Format
	loc       *time.Location
	now       func() time.Time
	// escape is applied to names coming from the scanner or the name data.
	escape func(string) string
}

// New creates a renderer. A nil location renders times in the local zone.
func New(names Names, templates config.Templates, format config.Format, loc *time.Location) *Renderer {
	if loc == nil {
		loc = time.Local
	}
	return &Renderer{names: names, templates: templates, format: format, loc: loc, now: time.Now, escape: noEscape}
}

// WithParseMode escapes substituted names for the Telegram parse mode, so
// only the templates carry markup. Modes other than HTML leave names as is.
func (r *Renderer) WithParseMode(mode string) *Renderer {
	if strings.EqualFold(mode, "HTML") {
		r.escape = html.EscapeString
	} else {
		r.escape = noEscape
	}
	return r
}

func noEscape(s string) string { return s }

// Render builds the full message for a channel, footer included.
func (r *Renderer) Render(ch config.Channel, sections []Section) string {
	return r.RenderAt(ch, sections, r.now())
}

// RenderAt is Render with an explicit footer time. Equal input yields equal output.
func (r *Renderer) RenderAt(ch config.Channel, sections []Section, at time.Time) string {
	var b strings.Builder
	for _, s := range sections {
		if len(s.Raids) == 0 {
			continue
		}
		if ch.GroupByLevel {
			b.WriteString(Substitute(r.templates.GroupedTitle, Vars{
				"raidlvl_name":  r.escape(r.names.RaidLevel(s.Level, true)),
				"raidlvl_num":   strconv.Itoa(s.Level),
				"raidlvl_emoji": LevelEmoji(s.Level),
			}))
			b.WriteString("\n")
		}
		for _, raid := range s.Raids {
			b.WriteString(r.line(raid))
			b.WriteString("\n")
		}
	}

	if b.Len() == 0 {
		b.WriteString(r.templates.NoRaid)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(Substitute(r.templates.Footer, Vars{
		"timestamp": strftime.Format(r.format.FooterTimeFormat, at.In(r.loc)),
	}))
	return b.String()
}

func (r *Renderer) line(raid raids.Raid) string {
	vars := Vars{
		"raidlvl_name":  r.escape(r.names.RaidLevel(raid.Level, false)),
		"raidlvl_num":   strconv.Itoa(raid.Level),
		"raidlvl_emoji": LevelEmoji(raid.Level),
		"time_start":    r.clock(raid.BattleStart),
		"time_end":      r.clock(raid.End),
		"gym_name":      r.escape(r.gymName(raid.GymName)),
		"gmaps_url":     MapsURL(raid.Lat, raid.Lon),
		"lat":           strconv.FormatFloat(raid.Lat, 'f', -1, 64),
		"lon":           strconv.FormatFloat(raid.Lon, 'f', -1, 64),
	}
	if raid.IsEgg() {
		return Substitute(r.templates.RaidEgg, vars)
	}

	vars["pokemon_name"] = r.escape(r.names.Species(raid.PokemonID))
	vars["atk_fast"] = r.escape(r.names.Move(raid.MoveFast))
	vars["atk_charge"] = r.escape(r.names.Move(raid.MoveCharge))
	return Substitute(r.templates.Raid, vars)
}

func (r *Renderer) clock(unix int64) string {
	return strftime.Format(r.format.TimeFormat, time.Unix(unix, 0).In(r.loc))
}

func (r *Renderer) gymName(name *string) string {
	if name == nil {
		return r.format.UnknownGymName
	}
	return TruncateName(*name, r.format.MaxGymNameLength)
}

// TruncateName shortens names longer than limit characters to limit-2 characters plus "..".
func TruncateName(name string, limit int) string {
	runes := []rune(name)
	if limit < 2 || len(runes) <= limit {
		return name
	}
	return string(runes[:limit-2]) + ".."
}

// MapsURL links a coordinate on Google Maps.
func MapsURL(lat, lon float64) string {
	return fmt.Sprintf("https://maps.google.de/?q=%.6f,%.6f", lat, lon)
}
