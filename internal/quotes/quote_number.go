package quotes

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"time"
)

// GenerateQuoteNumber returns a display reference of the form QT-YYYYMM-XXXX
// with a random four digit suffix. The value is not unique and is never used
// as a key; collisions within a month are acceptable.
func GenerateQuoteNumber(now time.Time) string {
	return fmt.Sprintf("QT-%s-%04d", now.UTC().Format("200601"), randomSuffix())
}

func randomSuffix() int {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 1000 + int(time.Now().UnixNano()%9000)
	}
	return 1000 + int(binary.BigEndian.Uint64(buf[:])%9000)
}
