package hashutil

import (
	"crypto/sha1"
	"encoding/hex"
	"strconv"
	"time"

	"github.com/mine-games/mine/internal/bytespool"
)

// SerializedSha1FromTime returns a hex sha1 of the current nanosecond clock,
// used as a cheap unique id for chat messages.
func SerializedSha1FromTime() string {
	buf := bytespool.Get()
	defer bytespool.Put(buf)

	buf.WriteString(strconv.FormatInt(time.Now().UnixNano(), 10))
	sum := sha1.Sum(buf.Bytes())
	return hex.EncodeToString(sum[:])
}
