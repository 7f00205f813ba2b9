// Package view turns an [overlay.View] into styled terminal text.
//
// The overlay package decides what is shown; this package only decides how.
// [RenderOverlay] draws one box per overlay panel:
//   - Header: title and the step counter
//   - Teams: one badge per team, colored by its rank in the team palette
//   - Tasks: the task selector with the selected option highlighted
//   - Detail: the selected task, its block count and the rasterized pattern
//   - Hover: the facts about the inspected cell
//
// Loading and error views render as a single box. Every line is clipped to
// [RenderOptions.Width] so the output never wraps.
package view
