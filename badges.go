package main

import (
	"github.com/charmbracelet/lipgloss"
	lru "github.com/hashicorp/golang-lru/v2"
)

const badgeCacheSize = 128

// badgeCache keeps one rendered style per tag color so the list view does
// not rebuild styles on every frame.
type badgeCache struct {
	styles *lru.Cache[string, lipgloss.Style]
}

func newBadgeCache() *badgeCache {
	styles, err := lru.New[string, lipgloss.Style](badgeCacheSize)
	if err != nil {
		// Only a non-positive size fails.
		panic(err)
	}
	return &badgeCache{styles: styles}
}

func (c *badgeCache) style(color string) lipgloss.Style {
	if s, ok := c.styles.Get(color); ok {
		return s
	}
	s := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#1f2937")).
		Background(lipgloss.Color(color)).
		Padding(0, 1)
	c.styles.Add(color, s)
	return s
}

// tag renders a tag badge. Tags without a registry color are drawn in gray.
func (c *badgeCache) tag(name, color string) string {
	if color == "" {
		color = "#666666"
	}
	return c.style(color).Render(name)
}

func (c *badgeCache) Len() int { return c.styles.Len() }
