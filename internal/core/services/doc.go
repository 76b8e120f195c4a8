// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Document loading runs segmentation, signing and annotation matching in
// that order, so every load sees the current text and the current store.
package services
