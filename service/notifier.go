package service

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
)

// Notifier posts refresh summaries to a Discord webhook. The webhook is
// executed directly, no gateway session is opened.
type Notifier struct {
	session      *discordgo.Session
	webhookID    string
	webhookToken string
}

// NewNotifier creates a webhook notifier
func NewNotifier(webhookID, webhookToken string) (*Notifier, error) {
	session, err := discordgo.New("")
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	return &Notifier{
		session:      session,
		webhookID:    webhookID,
		webhookToken: webhookToken,
	}, nil
}

// NotifyRefresh posts an embed describing a completed refresh
func (n *Notifier) NotifyRefresh(count int, ts time.Time) error {
	embed := &discordgo.MessageEmbed{
		Title: "Country data refreshed",
		Color: 0x1976D2,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Countries upserted", Value: fmt.Sprintf("%d", count), Inline: true},
			{Name: "Refreshed at", Value: ts.UTC().Format(time.RFC3339), Inline: true},
		},
		Timestamp: ts.UTC().Format(time.RFC3339),
	}

	_, err := n.session.WebhookExecute(n.webhookID, n.webhookToken, false, &discordgo.WebhookParams{
		Embeds: []*discordgo.MessageEmbed{embed},
	})
	if err != nil {
		return fmt.Errorf("failed to execute webhook: %w", err)
	}
	return nil
}
