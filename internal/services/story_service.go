package services

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/chasonjia/familytree/internal/repositories"
)

// StoryService renders stored life-story text as HTML, resolving embedded
// [person:<id>] markers to links on the referenced person's display name.
type StoryService struct {
	personRepo *repositories.PersonRepository
}

func NewStoryService(personRepo *repositories.PersonRepository) *StoryService {
	return &StoryService{personRepo: personRepo}
}

var personMarker = regexp.MustCompile(`\[person:(\d+)\]`)

var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// Render escapes the literal text once and replaces each marker with a link
// to the referenced person, or "Unknown (<id>)" if the id does not resolve.
// All distinct ids are fetched in one batch.
func (s *StoryService) Render(story string) (string, error) {
	matches := personMarker.FindAllStringSubmatchIndex(story, -1)
	if len(matches) == 0 {
		return htmlEscaper.Replace(story), nil
	}

	seen := make(map[int64]bool)
	var ids []int64
	for _, match := range matches {
		id, _ := strconv.ParseInt(story[match[2]:match[3]], 10, 64)
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	people, err := s.personRepo.GetByIDs(ids)
	if err != nil {
		return "", err
	}

	var out strings.Builder
	last := 0
	for _, match := range matches {
		out.WriteString(htmlEscaper.Replace(story[last:match[0]]))

		id, _ := strconv.ParseInt(story[match[2]:match[3]], 10, 64)
		if person, ok := people[id]; ok {
			out.WriteString(fmt.Sprintf(`<a href="/people/%d">%s</a>`, id, htmlEscaper.Replace(person.DisplayName())))
		} else {
			out.WriteString(fmt.Sprintf("Unknown (%d)", id))
		}

		last = match[1]
	}
	out.WriteString(htmlEscaper.Replace(story[last:]))

	return out.String(), nil
}
