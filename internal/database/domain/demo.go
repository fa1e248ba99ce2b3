package domain

import "time"

type DemoStatus string

const (
	DemoActive      DemoStatus = "ativa"
	DemoInactive    DemoStatus = "inativa"
	DemoMaintenance DemoStatus = "manutenção"
)

func (s DemoStatus) Valid() bool {
	switch s {
	case DemoActive, DemoInactive, DemoMaintenance:
		return true
	}
	return false
}

// ProjectCodeLength is the fixed length of a demo's project code.
const ProjectCodeLength = 6

// Demo is a catalog entry pointing at a hosted sales demo.
type Demo struct {
	ID                string
	Name              string
	Description       *string
	URL               *string
	Status            DemoStatus
	Vertical          *string
	Horizontal        *string
	Keywords          *string
	ProjectCode       *string
	SalesContactName  *string
	SalesContact      *string
	SalesContactPhoto *string
	CreatedBy         string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// DemoPatch carries the fields of a partial demo update.
type DemoPatch struct {
	Name              *string
	Description       *string
	URL               *string
	Status            *DemoStatus
	Vertical          *string
	Horizontal        *string
	Keywords          *string
	ProjectCode       *string
	SalesContactName  *string
	SalesContact      *string
	SalesContactPhoto *string
}

func (p DemoPatch) IsEmpty() bool {
	return p == DemoPatch{}
}
