package market

import (
	"errors"
	"strings"
)

// Comment is one entry of a market discussion.
type Comment struct {
	ID   int    `json:"id"`
	User string `json:"user"`
	Time string `json:"time"`
	Text string `json:"text"`
}

// ErrEmptyComment is returned when posting blank text.
var ErrEmptyComment = errors.New("comment is empty")

// Thread is the in-memory comment feed of a market.
type Thread struct {
	comments []Comment
	nextID   int
}

// NewThread returns a thread seeded with the mock discussion.
func NewThread() *Thread {
	return &Thread{
		comments: []Comment{
			{ID: 1, User: "CryptoKing", Time: "2m ago", Text: "This is definitely happening. The trend is clear."},
			{ID: 2, User: "BearWhale", Time: "15m ago", Text: "I doubt it. Too much resistance at this level."},
			{ID: 3, User: "SatoshiFan", Time: "1h ago", Text: "Volume is picking up significantly on the Yes side."},
		},
		nextID: 4,
	}
}

// Post adds text from user at the top of the feed.
func (t *Thread) Post(user, text string) (Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Comment{}, ErrEmptyComment
	}
	c := Comment{ID: t.nextID, User: user, Time: "just now", Text: text}
	t.nextID++
	t.comments = append([]Comment{c}, t.comments...)
	return c, nil
}

// Comments returns the feed, newest first.
func (t *Thread) Comments() []Comment {
	out := make([]Comment, len(t.comments))
	copy(out, t.comments)
	return out
}
