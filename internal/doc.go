// Package internal contains the core implementation packages for blockcraft.
//
// Blockcraft is a visual page builder backend: users place blocks from a fixed
// catalog onto a canvas, edit their properties, and export the result as a
// static HTML page or a full-stack project scaffold.
//
// # Package Organization
//
//   - types: shared data model (components, projects, backend schema)
//   - registry: the block catalog with default properties and edit forms
//   - markup: a small element tree used by preview rendering and parity checks
//   - renderer: builds the live preview tree for each block kind
//   - canvas: the ordered, concurrency-safe canvas document store
//   - editor: generic property edits (set, array add/remove/update)
//   - codegen: static HTML emitter and project scaffold generator
//   - backend: endpoint, model and auth schema editing
//   - parity: compares preview output with exported HTML per block
//   - assistant: chat and image analysis against a generative provider
//   - deploy: staged deployment simulator
//   - server: HTTP API, WebSocket canvas updates and rate limiting
//   - config, logging, errors, validation, watcher, version: ambient support
//
// # Inter-Package Communication
//
// The canvas store is the single source of truth for placed components. The
// server mutates it through the editor and broadcasts change notifications
// over WebSocket. Codegen and parity read snapshots only.
package internal
