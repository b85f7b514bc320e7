package effort

import (
	"strings"
	"time"
)

// Mapping is one configured component type with its complexity pricing. The
// full set of mappings forms the Table snapshot used for pricing.
type Mapping struct {
	id            int64
	componentType string
	hours         map[string]float64
	createdAt     time.Time
	updatedAt     time.Time
}

func NewMapping(componentType string, hours map[string]float64) Mapping {
	if hours == nil {
		hours = map[string]float64{}
	}
	return Mapping{
		componentType: strings.TrimSpace(componentType),
		hours:         hours,
	}
}

func HydrateMapping(id int64, componentType string, hours map[string]float64, createdAt, updatedAt time.Time) Mapping {
	return Mapping{
		id:            id,
		componentType: componentType,
		hours:         hours,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

func (m Mapping) ID() int64             { return m.id }
func (m Mapping) ComponentType() string { return m.componentType }
func (m Mapping) CreatedAt() time.Time  { return m.createdAt }
func (m Mapping) UpdatedAt() time.Time  { return m.updatedAt }

// Hours returns a copy of the complexity pricing so callers cannot mutate the
// aggregate from outside.
func (m Mapping) Hours() map[string]float64 {
	out := make(map[string]float64, len(m.hours))
	for k, v := range m.hours {
		out[k] = v
	}
	return out
}

func (m Mapping) WithHours(hours map[string]float64) Mapping {
	if hours == nil {
		hours = map[string]float64{}
	}
	m.hours = hours
	return m
}

func (m Mapping) WithComponentType(componentType string) Mapping {
	m.componentType = strings.TrimSpace(componentType)
	return m
}

// BuildTable assembles the pricing snapshot from the configured mappings.
func BuildTable(mappings []Mapping) Table {
	tbl := make(Table, len(mappings))
	for _, m := range mappings {
		tbl[m.componentType] = m.Hours()
	}
	return tbl
}
