package postgres

import (
	"regexp"
	"strings"

	"github.com/charthound/charthound/internal/datastore"
)

// maxIdentifierLength is Postgres' NAMEDATALEN-1; longer identifiers are
// silently truncated by the server, which would alias distinct channels.
const maxIdentifierLength = 63

var validChannelName = regexp.MustCompile(`^[a-z0-9_]+$`)

// TableForChannel maps a channel name to its backing table name. Channel
// names are lowercased and must reduce to a plain identifier so they can be
// embedded as table names.
func TableForChannel(channel string) (string, error) {
	lowered := strings.ToLower(channel)
	if !validChannelName.MatchString(lowered) {
		return "", datastore.NewInvalidChannelNameErr(channel)
	}

	tableName := tablePrefix + lowered
	if len(tableName) > maxIdentifierLength {
		return "", datastore.NewInvalidChannelNameErr(channel)
	}

	return tableName, nil
}

// quoteIdentifier returns the name as a quoted Postgres identifier, suitable
// for interpolation into positions where placeholders are not accepted.
func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// escapeLikePattern escapes LIKE metacharacters so a prefix matches only
// itself.
func escapeLikePattern(prefix string) string {
	escaped := strings.ReplaceAll(prefix, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `%`, `\%`)
	return strings.ReplaceAll(escaped, `_`, `\_`)
}
