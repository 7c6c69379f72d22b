package auth

import (
	"crypto/md5"

	ns "github.com/mcproxy/mcproxy/protocol/net_structures"
)

// OfflineUUID derives the UUID vanilla servers assign a player in
// offline/non-authenticated mode: MD5("OfflinePlayer:"+username), shaped
// as a version-3 (name-based) UUID. Pinned test vector: "Notch" produces
// b50ad385-829d-3141-a216-7e7d7539ba7a.
func OfflineUUID(username string) ns.UUID {
	sum := md5.Sum([]byte("OfflinePlayer:" + username))
	sum[6] = (sum[6] & 0x0f) | 0x30
	sum[8] = (sum[8] & 0x3f) | 0x80
	var u ns.UUID
	copy(u[:], sum[:])
	return u
}
