// Package models contains the GORM persistence models behind the domain
// aggregates. Domain types stay free of ORM tags; each model converts with
// ToDomain and <Name>ModelFromDomain.
//
// Per-tenant uniqueness of codes, serial numbers and order numbers is
// enforced by the (tenant_id, code) constraints in migrations/000001_init.
package models
