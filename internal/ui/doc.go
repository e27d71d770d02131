package ui

// Package ui is the Fyne presentation layer: the main control window for
// managing the character library, and the overlay window host that renders
// enabled characters as borderless surfaces.
