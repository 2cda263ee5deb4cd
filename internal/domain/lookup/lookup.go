package lookup

import "context"

// Province is one row of the province dictionary.
type Province struct {
	Code   string `db:"code" json:"code"`
	Name   string `db:"name" json:"name"`
	Region string `db:"region" json:"region"`
}

// Insurer is one registered insurance provider. Codes are stored normalized
// (trimmed, upper-case) and matched exactly.
type Insurer struct {
	Code string `db:"code" json:"code"`
	Name string `db:"name" json:"name"`
}

type Repository interface {
	ListProvinces(ctx context.Context) ([]Province, error)
	ListInsurers(ctx context.Context) ([]Insurer, error)
}
