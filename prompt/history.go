package prompt

import (
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

const (
	lastCheckKey   = "survey_last_check"
	promptedIDsKey = "survey_prompted_ids"
)

// History is the prompt bookkeeping the prober needs: when eligibility was
// last probed, and which surveys were already offered. Backed by the local
// state store in the CLI, by an in-memory fake in tests.
type History interface {
	LastChecked() (time.Time, error)
	SetLastChecked(t time.Time) error
	Prompted(surveyID string) (bool, error)
	MarkPrompted(surveyID string) error
}

// KV is the slice of the local store the history needs.
type KV interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

type kvHistory struct {
	kv KV
}

// NewHistory persists prompt history in a key-value store, using the same
// encoding the web client kept in localStorage: a millisecond timestamp and a
// JSON-encoded id list.
func NewHistory(kv KV) History {
	return kvHistory{kv}
}

func (h kvHistory) LastChecked() (time.Time, error) {
	raw, ok, err := h.kv.Get(lastCheckKey)
	if err != nil || !ok {
		return time.Time{}, err
	}
	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		// unreadable timestamp: treat as never checked
		return time.Time{}, nil
	}
	return time.UnixMilli(ms), nil
}

func (h kvHistory) SetLastChecked(t time.Time) error {
	return h.kv.Set(lastCheckKey, strconv.FormatInt(t.UnixMilli(), 10))
}

func (h kvHistory) promptedIDs() ([]string, error) {
	raw, ok, err := h.kv.Get(promptedIDsKey)
	if err != nil || !ok {
		return nil, err
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil, errors.Wrap(err, "prompt history: decode prompted ids")
	}
	return ids, nil
}

func (h kvHistory) Prompted(surveyID string) (bool, error) {
	ids, err := h.promptedIDs()
	if err != nil {
		return false, err
	}
	for _, id := range ids {
		if id == surveyID {
			return true, nil
		}
	}
	return false, nil
}

func (h kvHistory) MarkPrompted(surveyID string) error {
	ids, err := h.promptedIDs()
	if err != nil {
		return err
	}
	ids = append(ids, surveyID)
	encoded, err := json.Marshal(ids)
	if err != nil {
		return errors.Wrap(err, "prompt history: encode prompted ids")
	}
	return h.kv.Set(promptedIDsKey, string(encoded))
}

// MemoryHistory is an in-memory History, for tests and throwaway sessions.
type MemoryHistory struct {
	lastChecked time.Time
	prompted    map[string]bool
}

func NewMemoryHistory() *MemoryHistory {
	return &MemoryHistory{prompted: make(map[string]bool)}
}

func (h *MemoryHistory) LastChecked() (time.Time, error) { return h.lastChecked, nil }

func (h *MemoryHistory) SetLastChecked(t time.Time) error {
	h.lastChecked = t
	return nil
}

func (h *MemoryHistory) Prompted(surveyID string) (bool, error) {
	return h.prompted[surveyID], nil
}

func (h *MemoryHistory) MarkPrompted(surveyID string) error {
	h.prompted[surveyID] = true
	return nil
}
