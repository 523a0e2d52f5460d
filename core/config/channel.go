package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Channel is one configured status message target.
// Channels are built once by Load and never change afterwards.
type Channel struct {
	// ChatID is the chat identifier (numeric id or @channelname).
	ChatID string
	// ThreadID is the forum topic; 0 addresses the chat root.
	ThreadID int
	// RaidLevels lists the raid levels shown, in display order.
	RaidLevels []int
	// IncludeUnknown shows eggs (raids without a hatched pokemon).
	IncludeUnknown bool
	// GroupByLevel renders one section with a header per raid level.
	GroupByLevel bool
	// Geofence is a WKT polygon ring ("lat lon, lat lon, ..."); empty means unrestricted.
	Geofence string
	// OrderDescending reverses the time ordering of raids.
	OrderDescending bool
	// PinOnCreate pins freshly sent status messages.
	PinOnCreate bool
}

// Key returns the message store key of the channel.
func (c Channel) Key() ChannelKey {
	return ChannelKey{ChatID: c.ChatID, ThreadID: c.ThreadID}
}

// ChannelKey identifies one tracked status message slot.
type ChannelKey struct {
	ChatID   string
	ThreadID int
}

// String returns "chat" for the chat root and "chat:thread" for topics.
func (k ChannelKey) String() string {
	if k.ThreadID == 0 {
		return k.ChatID
	}
	return k.ChatID + ":" + strconv.Itoa(k.ThreadID)
}

// ParseChannelKey is the inverse of ChannelKey.String.
func ParseChannelKey(s string) (ChannelKey, error) {
	if s == "" {
		return ChannelKey{}, errors.New("empty channel key")
	}
	idx := strings.LastIndex(s, ":")
	if idx <= 0 {
		return ChannelKey{ChatID: s}, nil
	}
	thread, err := strconv.Atoi(s[idx+1:])
	if err != nil {
		return ChannelKey{}, fmt.Errorf("channel key %q: invalid thread id", s)
	}
	return ChannelKey{ChatID: s[:idx], ThreadID: thread}, nil
}

// rawChannel mirrors one [[raidconfig]] table. Pointer fields tell an
// absent option apart from its zero value.
type rawChannel struct {
	ChatID           *string `mapstructure:"chat_id"`
	MessageThreadID  *int    `mapstructure:"message_thread_id"`
	RaidLevel        []int   `mapstructure:"raidlevel"`
	Eggs             *bool   `mapstructure:"eggs"`
	RaidlevelGroup   *bool   `mapstructure:"raidlevel_grouping"`
	Geofence         *string `mapstructure:"geofence"`
	OrderTimeReverse *bool   `mapstructure:"order_time_reverse"`
	PinMsg           *bool   `mapstructure:"pin_msg"`
}

// toChannel applies the documented defaults and checks mandatory fields.
func (r rawChannel) toChannel(index int) (Channel, error) {
	if r.ChatID == nil || strings.TrimSpace(*r.ChatID) == "" {
		return Channel{}, fmt.Errorf("raidconfig[%d].chat_id is required", index)
	}
	if len(r.RaidLevel) == 0 {
		return Channel{}, fmt.Errorf("raidconfig[%d].raidlevel must list at least one level", index)
	}

	ch := Channel{
		ChatID:         strings.TrimSpace(*r.ChatID),
		RaidLevels:     append([]int(nil), r.RaidLevel...),
		IncludeUnknown: boolOr(r.Eggs, true),
		GroupByLevel:   boolOr(r.RaidlevelGroup, true),
		PinOnCreate:    boolOr(r.PinMsg, true),
	}
	if r.MessageThreadID != nil {
		if *r.MessageThreadID < 0 {
			return Channel{}, fmt.Errorf("raidconfig[%d].message_thread_id must not be negative", index)
		}
		ch.ThreadID = *r.MessageThreadID
	}
	if r.Geofence != nil {
		ch.Geofence = strings.TrimSpace(*r.Geofence)
	}
	if r.OrderTimeReverse != nil {
		ch.OrderDescending = *r.OrderTimeReverse
	}
	return ch, nil
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
