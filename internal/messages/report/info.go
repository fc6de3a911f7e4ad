package report

import "time"

type Kind string

const (
	KindGenerate Kind = "GENERATE"
	KindCrack    Kind = "CRACK"
)

type Id string

// Info is the record kept for one finished generation or crack run.
type Info struct {
	ID          Id            `json:"id" bson:"_id"`
	Kind        Kind          `json:"kind"`
	State       string        `json:"state"`
	Target      string        `json:"target"`
	Source      string        `json:"source,omitempty"`
	Attempts    string        `json:"attempts"`
	Total       string        `json:"total,omitempty"`
	Found       bool          `json:"found"`
	Password    string        `json:"password,omitempty"`
	Salt        string        `json:"salt,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
	Duration    time.Duration `json:"duration"`
	ErrorReason string        `json:"errorReason,omitempty"`
}

func (r *Info) Copy() *Info {
	c := *r
	return &c
}
