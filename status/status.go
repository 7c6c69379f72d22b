// Package status builds the cached server-list-ping JSON blob (§2, §4.4).
package status

import (
	"encoding/json"
	"fmt"
	"sync"
)

// version is the "version" object of a status response.
type version struct {
	Name     string `json:"name"`
	Protocol int32  `json:"protocol"`
}

// players is the "players" object of a status response.
type players struct {
	Max    int `json:"max"`
	Online int `json:"online"`
}

// description is a bare-text chat component, the only shape the proxy ever
// needs for a MOTD.
type description struct {
	Text string `json:"text"`
}

// response is the camelCase JSON document served for a Status Request,
// matching original_source/src/protocol/packet/status.rs's StatusResponse
// shape.
type response struct {
	Version            version     `json:"version"`
	Players            players     `json:"players"`
	Description        description `json:"description"`
	PreviewsChat       bool        `json:"previewsChat"`
	EnforcesSecureChat bool        `json:"enforcesSecureChat"`
}

// Config is what the proxy's own config contributes to the status blob.
type Config struct {
	VersionName     string
	ProtocolNumber  int32
	MaxPlayers      int
	OnlinePlayers   int
	MOTD            string
}

var (
	cacheOnce sync.Once
	cached    string
	cacheErr  error
)

// JSON returns the cached status response, building it once from cfg on
// first call and reusing the same bytes for every subsequent ping — the
// same OnceLock<String> pattern the original source's handlers.rs uses for
// its STATUS global.
func JSON(cfg Config) (string, error) {
	cacheOnce.Do(func() {
		r := response{
			Version:      version{Name: cfg.VersionName, Protocol: cfg.ProtocolNumber},
			Players:      players{Max: cfg.MaxPlayers, Online: cfg.OnlinePlayers},
			Description:  description{Text: cfg.MOTD},
			PreviewsChat: false,
		}
		data, err := json.Marshal(r)
		if err != nil {
			cacheErr = fmt.Errorf("status: marshal: %w", err)
			return
		}
		cached = string(data)
	})
	return cached, cacheErr
}
