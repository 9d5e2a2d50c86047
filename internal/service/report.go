package service

import (
	"sort"
	"strings"
	"time"

	"github.com/dastanaron/mozbookmarks/internal/models"
)

// EntryRef locates an entry inside a tree
type EntryRef struct {
	Guid  string `yaml:"guid"`
	Title string `yaml:"title"`
	// Path is the chain of folder titles above the entry.
	Path string `yaml:"path"`
}

// Duplicate is a URI stored by more than one entry
type Duplicate struct {
	URI     string     `yaml:"uri"`
	Entries []EntryRef `yaml:"entries"`
}

// DuplicatesIn finds entries sharing a URI. The first occurrence in tree
// order comes first within each group; groups are ordered by URI.
func DuplicatesIn(root models.Explorable) []Duplicate {
	byURI := make(map[string][]EntryRef)
	var path []string
	_ = models.Explore(root, func(n models.Node, depth int) error {
		if depth > 0 {
			path = path[:depth-1]
		}
		switch v := n.(type) {
		case *models.Entry:
			if v.URI == "" {
				return nil
			}
			byURI[v.URI] = append(byURI[v.URI], EntryRef{
				Guid:  string(v.Guid),
				Title: v.Title,
				Path:  strings.Join(path, " / "),
			})
		case models.Explorable:
			if depth > 0 {
				path = append(path, v.Common().Title)
			}
		}
		return nil
	})

	var dups []Duplicate
	for uri, refs := range byURI {
		if len(refs) > 1 {
			dups = append(dups, Duplicate{URI: uri, Entries: refs})
		}
	}
	sort.Slice(dups, func(i, j int) bool {
		return dups[i].URI < dups[j].URI
	})
	return dups
}

// Stats summarises a tree
type Stats struct {
	Nodes      int            `yaml:"nodes"`
	Folders    int            `yaml:"folders"`
	Entries    int            `yaml:"entries"`
	Separators int            `yaml:"separators"`
	MaxDepth   int            `yaml:"max_depth"`
	Oldest     time.Time      `yaml:"oldest,omitempty"`
	Newest     time.Time      `yaml:"newest,omitempty"`
	Tags       map[string]int `yaml:"tags,omitempty"`
}

// StatsOf counts the nodes of a tree by shape. Oldest and Newest cover the
// dateAdded of entries.
func StatsOf(root models.Explorable) *Stats {
	st := &Stats{}
	_ = models.Explore(root, func(n models.Node, depth int) error {
		st.Nodes++
		if depth > st.MaxDepth {
			st.MaxDepth = depth
		}
		switch v := n.(type) {
		case *models.Folder:
			st.Folders++
		case *models.Separator:
			st.Separators++
		case *models.Entry:
			st.Entries++
			added := v.DateAdded.Time()
			if st.Oldest.IsZero() || added.Before(st.Oldest) {
				st.Oldest = added
			}
			if added.After(st.Newest) {
				st.Newest = added
			}
			if v.Tags != nil {
				for _, tag := range v.Tags.Members() {
					if tag == "" {
						continue
					}
					if st.Tags == nil {
						st.Tags = make(map[string]int)
					}
					st.Tags[tag]++
				}
			}
		}
		return nil
	})
	return st
}
