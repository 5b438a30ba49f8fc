// Package models defines the core domain models for stockkeeper.
//
// # Models
//
//   - User: a registered account with an optional phone number and an SMS
//     low-stock alert preference
//   - Item: one inventory line (name and quantity) owned by a single user
//
// # Design Principles
//
// 1. **Plain data**: models carry no behavior beyond small helpers
// 2. **Integer identities**: ids are assigned by storage and never reused
// 3. **Ownership by ID**: Item.UserID references User.ID; no pointers between models
// 4. **No cache**: every read goes back to storage, models are snapshots
package models
