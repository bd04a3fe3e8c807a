package bot

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	tele "gopkg.in/telebot.v4"

	"github.com/bibiti/supportbot/core/logger"
	tghelpers "github.com/bibiti/supportbot/core/telegram/helpers"
	"github.com/bibiti/supportbot/internal/ratings"
)

// handleAdminUsers exports the user directory to the configured file and
// sends it as a document. If the file cannot be written the listing is sent
// as plain text instead.
func (b *Bot) handleAdminUsers(c tele.Context) error {
	listing := b.directory.Export()
	path := b.cfg.Storage.ExportFile

	if err := os.WriteFile(path, []byte(listing), 0o644); err != nil {
		logger.Warn(tghelpers.BuildContext(c), "bot", "users.export_failed",
			slog.String("path", path),
			slog.String("err", err.Error()),
		)
		return b.send(c, listing, nil)
	}

	doc := &tele.Document{
		File:     tele.FromDisk(path),
		FileName: filepath.Base(path),
		Caption:  fmt.Sprintf(adminMsgUsersListCaption, filepath.Base(path)),
	}
	if err := c.Send(doc); err != nil {
		logger.Warn(tghelpers.BuildContext(c), "bot", "users.send_failed",
			slog.String("err", err.Error()),
		)
		return b.send(c, listing, nil)
	}
	return nil
}

// handleAdminStats reports average scores per venue.
func (b *Bot) handleAdminStats(c tele.Context) error {
	lines := make([]string, 0, len(b.cfg.Venues)+1)
	lines = append(lines, adminMsgStatsHeader)
	for _, venue := range b.cfg.Venues {
		s := ratings.AverageFor(b.directory, venue)
		if s.Samples == 0 {
			lines = append(lines, fmt.Sprintf(adminMsgStatsEmpty, venue))
			continue
		}
		lines = append(lines, fmt.Sprintf(adminMsgStatsLine, venue, s.AvgDrink, s.AvgService, s.Samples))
	}
	return b.send(c, strings.Join(lines, "\n"), nil)
}
