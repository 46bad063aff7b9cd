package pub

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	tmlog "github.com/tendermint/tendermint/libs/log"
)

func TestSaramaLoggerWritesOneDebugRecordPerCall(t *testing.T) {
	var buf bytes.Buffer
	l := saramaLogger{tmlog.NewTMLogger(&buf)}

	l.Println("client/metadata fetching metadata for", "bridge")
	l.Printf("connected to broker at %s\n", "localhost:9092")
	l.Print("\n")

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	require.Contains(t, lines[0], "client/metadata fetching metadata for bridge")
	require.Contains(t, lines[1], "connected to broker at localhost:9092")
	for _, line := range lines {
		require.True(t, strings.HasPrefix(line, "D["), line)
	}
}
