package category

import (
	"github.com/rcwtools/paintsum/internal/common"
	"github.com/rcwtools/paintsum/internal/signal"
)

// DefaultCategories is the fallback template when a caller supplies no
// category headers.
var DefaultCategories = []string{
	"EXT PRIME", "EXTERIOR", "EXTERIOR UA", "INTERIOR",
	"BASE SHOE", "ROLL WALLS FINAL", "TOUCH UP", "Q4 REVERSAL",
}

// MappingResult is the outcome of mapping one task to a category.
type MappingResult struct {
	Signals         signal.TaskSignals
	CategoryDisplay string
	Reason          string
	ScopeFragment   string
	IsNewCategory   bool
}

// CreatedCategory records an auto-created category for operator review.
type CreatedCategory struct {
	Signals      signal.TaskSignals
	Header       string
	Reason       string
	ExampleTasks []string
}

// Mapper owns the running category set for one aggregation run:
// the caller's template categories plus any auto-created ones.
// It is not safe for concurrent use; give each run its own Mapper.
type Mapper struct {
	extractor      *signal.Extractor
	canonToDisplay map[string]string
	createdCanons  map[string]struct{}
	cfg            signal.Config
	headers        []string
	created        []CreatedCategory
}

// NewMapper creates a mapper seeded with the given template headers, or
// DefaultCategories when none are supplied.
func NewMapper(templateHeaders []string, cfg signal.Config) *Mapper {
	if len(templateHeaders) == 0 {
		templateHeaders = DefaultCategories
	}

	m := &Mapper{
		extractor:      signal.NewExtractor(cfg),
		canonToDisplay: make(map[string]string, len(templateHeaders)),
		createdCanons:  make(map[string]struct{}),
		cfg:            cfg,
		headers:        append([]string(nil), templateHeaders...),
	}
	for _, header := range m.headers {
		m.canonToDisplay[Canonical(header)] = header
	}
	return m
}

// MapTask maps a task to a category. Template categories are tried
// first; otherwise the task reuses a previously created column with the
// same base name, or registers a genuinely new one. Every call returns
// a non-empty category.
func (m *Mapper) MapTask(task string) MappingResult {
	signals := m.extractor.Extract(task)

	if display, reason := matchTemplate(task, signals, m.canonToDisplay, m.cfg); display != "" {
		return MappingResult{
			CategoryDisplay: display,
			Reason:          reason,
			Signals:         signals,
			ScopeFragment:   signal.ScopeFragment(task),
		}
	}

	// Reuse a column this run already created for the same base name, so
	// repeated novel phrasings collapse onto one column.
	baseName := BaseCategoryName(task, signals)
	if display, ok := m.canonToDisplay[Canonical(baseName)]; ok {
		return MappingResult{
			CategoryDisplay: display,
			Reason:          "reused_created_category",
			Signals:         signals,
			ScopeFragment:   signal.ScopeFragment(task),
		}
	}

	name := newCategoryName(task, signals, m.allCanonicals())
	canon := Canonical(name)

	m.createdCanons[canon] = struct{}{}
	m.headers = append(m.headers, name)
	m.canonToDisplay[canon] = name
	m.created = append(m.created, CreatedCategory{
		Header:       name,
		ExampleTasks: []string{task},
		Reason:       "auto_created",
		Signals:      signals,
	})

	common.LogDebug("auto-created category", common.Fields{"header": name, "task": task})

	return MappingResult{
		CategoryDisplay: name,
		Reason:          "auto_created",
		IsNewCategory:   true,
		Signals:         signals,
		ScopeFragment:   signal.ScopeFragment(task),
	}
}

// AddExampleToCreatedCategory records an example task against a created
// category, keeping at most 3 examples per category.
func (m *Mapper) AddExampleToCreatedCategory(categoryName, task string) {
	canon := Canonical(categoryName)
	for i := range m.created {
		if Canonical(m.created[i].Header) == canon {
			if len(m.created[i].ExampleTasks) < 3 {
				m.created[i].ExampleTasks = append(m.created[i].ExampleTasks, task)
			}
			return
		}
	}
}

// CategoryHeaders returns all category headers, template then created,
// in registration order.
func (m *Mapper) CategoryHeaders() []string {
	return m.headers
}

// CreatedCategories returns the audit log of auto-created categories.
func (m *Mapper) CreatedCategories() []CreatedCategory {
	return m.created
}

func (m *Mapper) allCanonicals() map[string]struct{} {
	all := make(map[string]struct{}, len(m.canonToDisplay))
	for canon := range m.canonToDisplay {
		all[canon] = struct{}{}
	}
	return all
}
