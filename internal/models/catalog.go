package models

// Avatar is a selectable profile picture.
type Avatar struct {
	ID    string
	Name  string
	Emoji string
}

var Avatars = []Avatar{
	{ID: "dino", Name: "Dinosaur", Emoji: "🦕"},
	{ID: "dog", Name: "Dog", Emoji: "🐕"},
	{ID: "cat", Name: "Cat", Emoji: "🐱"},
	{ID: "giraffe", Name: "Giraffe", Emoji: "🦒"},
	{ID: "lion", Name: "Lion", Emoji: "🦁"},
	{ID: "panda", Name: "Panda", Emoji: "🐼"},
	{ID: "koala", Name: "Koala", Emoji: "🐨"},
	{ID: "fox", Name: "Fox", Emoji: "🦊"},
	{ID: "wolf", Name: "Wolf", Emoji: "🐺"},
	{ID: "bear", Name: "Bear", Emoji: "🐻"},
	{ID: "rabbit", Name: "Rabbit", Emoji: "🐰"},
	{ID: "monkey", Name: "Monkey", Emoji: "🐵"},
}

// Theme is a named color scheme. Only the id is persisted.
type Theme struct {
	ID     string
	Name   string
	Accent string // terminal color
	IsDark bool
}

var Themes = []Theme{
	{ID: "day", Name: "Day", Accent: "214"},
	{ID: "night", Name: "Night", Accent: "250", IsDark: true},
	{ID: "sunset", Name: "Sunset", Accent: "203"},
	{ID: "ocean", Name: "Ocean", Accent: "39"},
	{ID: "forest", Name: "Forest", Accent: "35"},
	{ID: "neon", Name: "Neon", Accent: "171"},
}

func FindAvatar(id string) (Avatar, bool) {
	for _, a := range Avatars {
		if a.ID == id {
			return a, true
		}
	}
	return Avatar{}, false
}

// FindTheme returns the theme with the given id, falling back to the first theme.
func FindTheme(id string) (Theme, bool) {
	for _, t := range Themes {
		if t.ID == id {
			return t, true
		}
	}
	return Themes[0], false
}
