// Package ui is the Bubble Tea host for the carousel controllers.
//
// Each showcase (projects, skills, about) is a pane: a deck of items plus a
// carousel.Controller. All controllers share one clock.Manual that the model
// advances to wall time on every frame tick, so unlock and autoplay timers
// fire inside Update and never race the renderer.
//
// Input mapping:
//
//   - left/right (h/l): OnKey
//   - enter/space: ToggleFlip
//   - 1-9: SelectIndex
//   - click on a card: Click
//   - press, drag and release on the card row: GestureTracker into OnDragEnd
//   - tab/shift+tab: switch showcase; T: cycle theme; ?: help; q: quit
//
// Theme and focused showcase are saved to prefs when they change. Every
// controller is disposed on quit.
package ui
