package packet

import (
	"regexp"
	"strings"

	"github.com/effective-security/xlog"
)

// userIDGrammar splits "Name (Comment) <Email>"
var userIDGrammar = regexp.MustCompile(`^(.+?)(?: \((.+?)\))?(?: <(.+)>)?$`)

// UserID is a User ID packet
type UserID struct {
	Name    string
	Comment string
	Email   string
}

// NewUserID returns a User ID packet
func NewUserID(name, comment, email string) *UserID {
	return &UserID{Name: name, Comment: comment, Email: email}
}

// Tag returns TagUserID
func (u *UserID) Tag() Tag { return TagUserID }

// String returns "Name (Comment) <Email>", omitting the empty parts
func (u *UserID) String() string {
	var sb strings.Builder
	sb.WriteString(u.Name)
	if u.Comment != "" {
		sb.WriteString(" (")
		sb.WriteString(u.Comment)
		sb.WriteString(")")
	}
	if u.Email != "" {
		sb.WriteString(" <")
		sb.WriteString(u.Email)
		sb.WriteString(">")
	}
	return sb.String()
}

func (u *UserID) parse(r *reader) error {
	text := string(r.rest())
	if text == "" {
		return nil
	}
	m := userIDGrammar.FindStringSubmatch(text)
	if m == nil {
		logger.KV(xlog.DEBUG, "reason", "userid_format", "len", len(text))
		u.Name = text
		return nil
	}
	u.Name, u.Comment, u.Email = m[1], m[2], m[3]
	return nil
}

func (u *UserID) marshal(w *writer) error {
	w.AddBytes([]byte(u.String()))
	return nil
}
