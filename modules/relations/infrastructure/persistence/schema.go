package persistence

import _ "embed"

// Schema is the full DDL for the relationship graph tables. Applied by
// the test harness against fresh databases; production rollout manages
// DDL out of band.
//
//go:embed schema/relations-schema.sql
var Schema string
