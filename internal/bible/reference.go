package bible

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidReference is returned when a reference is not "<book> <chapter>:<verse>".
var ErrInvalidReference = errors.New("invalid reference")

var bookByName = func() map[string]Book {
	m := make(map[string]Book, len(Books)*2)
	for _, b := range Books {
		m[strings.ToLower(b.Name)] = b
		m[strings.ToLower(b.Short)] = b
	}
	return m
}()

// LookupBook finds a book by full name, short name or numeric id, ignoring case.
func LookupBook(s string) (Book, bool) {
	s = strings.Join(strings.Fields(s), " ")
	if id, err := strconv.Atoi(s); err == nil {
		b, ok := bookByID[id]
		return b, ok
	}
	b, ok := bookByName[strings.ToLower(s)]
	return b, ok
}

// ParseReference reads "Genesis 1:3", "1 Cor 13:4" or "gen 1:1" into book, chapter and verse.
func ParseReference(s string) (book, chapter, verse int, err error) {
	s = strings.TrimSpace(s)
	split := strings.LastIndex(s, " ")
	if split < 0 {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidReference, s)
	}

	b, ok := LookupBook(s[:split])
	if !ok {
		return 0, 0, 0, fmt.Errorf("%w: unknown book %q", ErrInvalidReference, strings.TrimSpace(s[:split]))
	}

	chapterPart, versePart, found := strings.Cut(s[split+1:], ":")
	if !found {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidReference, s)
	}
	chapter, err = strconv.Atoi(chapterPart)
	if err != nil || chapter < 1 {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidReference, s)
	}
	verse, err = strconv.Atoi(versePart)
	if err != nil || verse < 1 {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidReference, s)
	}

	return b.ID, chapter, verse, nil
}
