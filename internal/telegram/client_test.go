package telegram

import (
	"strings"
	"testing"
	"time"
)

func TestEscapeMarkdownV2(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Hello World", "Hello World"},
		{"Hello_World", "Hello\\_World"},
		{"Test*bold*", "Test\\*bold\\*"},
		{"Price: $100.50", "Price: $100\\.50"},
		{"[link](url)", "\\[link\\]\\(url\\)"},
		{"+6.2% premium", "\\+6\\.2% premium"},
		{"-22.0%", "\\-22\\.0%"},
		{"`code`", "\\`code\\`"},
		{">blockquote", "\\>blockquote"},
		{"{brace}", "\\{brace\\}"},
		{"end!", "end\\!"},
		{"", ""},
		{"_*[]()~`>#+-=|{}.!", "\\_\\*\\[\\]\\(\\)\\~\\`\\>\\#\\+\\-\\=\\|\\{\\}\\.\\!"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := escapeMarkdownV2(tt.input)
			if result != tt.expected {
				t.Errorf("escapeMarkdownV2(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestNewClient_InvalidChatID(t *testing.T) {
	// Chat ID parsing runs before the bot handshake, so no network is needed.
	_, err := NewClient("unused-token", "not-a-number", 3, time.Second)
	if err == nil {
		t.Fatal("Expected error for invalid chat ID, got nil")
	}
	if !strings.Contains(err.Error(), "invalid chat ID") {
		t.Errorf("Expected chat ID parse error, got: %v", err)
	}
}
