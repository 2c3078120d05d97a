package models

import "encoding/json"

// FeedStatus names the variant a FeedState holds.
type FeedStatus string

const (
	StatusLoading FeedStatus = "loading"
	StatusLoaded  FeedStatus = "loaded"
	StatusFailed  FeedStatus = "failed"
)

// FeedState is the outcome of the current fetch cycle: Loading, Loaded(items)
// or Failed(message). Values are only built through the constructors below,
// so items and an error message never coexist.
type FeedState struct {
	status  FeedStatus
	items   []VideoItem
	message string
}

// Loading returns the state of a cycle that has not settled yet.
func Loading() FeedState {
	return FeedState{status: StatusLoading}
}

// Loaded returns a settled state holding items, possibly none.
func Loaded(items []VideoItem) FeedState {
	if items == nil {
		items = []VideoItem{}
	}
	return FeedState{status: StatusLoaded, items: items}
}

// Failed returns a settled state carrying an error message.
func Failed(message string) FeedState {
	return FeedState{status: StatusFailed, message: message}
}

// Status returns the variant held. The zero FeedState is Loading.
func (s FeedState) Status() FeedStatus {
	if s.status == "" {
		return StatusLoading
	}
	return s.status
}

// Items returns the loaded items; nil unless the state is Loaded.
func (s FeedState) Items() []VideoItem { return s.items }

// Message returns the failure message; empty unless the state is Failed.
func (s FeedState) Message() string { return s.message }

func (s FeedState) IsLoading() bool { return s.Status() == StatusLoading }
func (s FeedState) IsFailed() bool  { return s.status == StatusFailed }

// Empty reports a Loaded state with no items.
func (s FeedState) Empty() bool {
	return s.status == StatusLoaded && len(s.items) == 0
}

type feedStateJSON struct {
	Status FeedStatus  `json:"status"`
	Items  []VideoItem `json:"items,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (s FeedState) MarshalJSON() ([]byte, error) {
	return json.Marshal(feedStateJSON{Status: s.Status(), Items: s.items, Error: s.message})
}
