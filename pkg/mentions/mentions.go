// Package mentions extracts user and ticket references from
// user-supplied text. Scanning is pure string work, resolving the
// references against real users and tickets is the caller's business.
package mentions

import (
	"regexp"
	"strconv"
	"strings"
)

// The tilde must follow start-of-text, whitespace or an opening paren,
// which keeps path segments like example.org/~alice from matching.
var userMentionRe = regexp.MustCompile(`(^|[\s(])~(\w+)\b`)

// Three shapes share one pattern: #N, tracker#N and ~user/tracker#N.
var ticketMentionRe = regexp.MustCompile(`(^|[\s(])(?:~(\w+)/)?([A-Za-z0-9_.-]+)?#(\d+)\b`)

// TicketRef is a fully qualified ticket reference.
type TicketRef struct {
	Owner    string
	Tracker  string
	ScopedID int64
}

// Mentions holds the deduplicated references found in one text.
type Mentions struct {
	Users   map[string]struct{}
	Tickets map[TicketRef]struct{}
}

// Scanner recognizes mentions, including canonical ticket URLs under
// the service base URL.
type Scanner struct {
	urlRe *regexp.Regexp
}

func NewScanner(baseURL string) *Scanner {
	base := regexp.QuoteMeta(strings.TrimSuffix(baseURL, "/"))
	return &Scanner{
		urlRe: regexp.MustCompile(`(^|[\s(])` + base + `/~(\w+)/([A-Za-z0-9_.-]+)/(\d+)\b`),
	}
}

// Scan collects the mentions in text. Bare #N references resolve
// against defaultOwner/defaultTracker, tracker#N against defaultOwner.
// Usernames carry no tilde.
func (s *Scanner) Scan(text, defaultOwner, defaultTracker string) Mentions {
	m := Mentions{
		Users:   make(map[string]struct{}),
		Tickets: make(map[TicketRef]struct{}),
	}

	for _, match := range userMentionRe.FindAllStringSubmatchIndex(text, -1) {
		// A trailing slash means a qualified ticket reference, the
		// ticket pattern owns those.
		if end := match[1]; end < len(text) && text[end] == '/' {
			continue
		}
		m.Users[text[match[4]:match[5]]] = struct{}{}
	}

	for _, match := range ticketMentionRe.FindAllStringSubmatch(text, -1) {
		owner, tracker, number := match[2], match[3], match[4]
		ref, ok := qualify(owner, tracker, number, defaultOwner, defaultTracker)
		if !ok {
			continue
		}
		m.Tickets[ref] = struct{}{}
	}

	for _, match := range s.urlRe.FindAllStringSubmatch(text, -1) {
		ref, ok := qualify(match[2], match[3], match[4], defaultOwner, defaultTracker)
		if !ok {
			continue
		}
		m.Tickets[ref] = struct{}{}
	}

	return m
}

func qualify(owner, tracker, number, defaultOwner, defaultTracker string) (TicketRef, bool) {
	scopedID, err := strconv.ParseInt(number, 10, 64)
	if err != nil || scopedID <= 0 {
		return TicketRef{}, false
	}
	switch {
	case owner == "" && tracker == "":
		owner, tracker = defaultOwner, defaultTracker
	case owner == "":
		owner = defaultOwner
	case tracker == "":
		// ~user/#N is not a reference shape.
		return TicketRef{}, false
	}
	if owner == "" || tracker == "" {
		return TicketRef{}, false
	}
	return TicketRef{Owner: owner, Tracker: tracker, ScopedID: scopedID}, true
}
