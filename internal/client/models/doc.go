// Package models defines the client-side domain types of GameZone: users,
// products and the editable user form with its validation rules.
package models
