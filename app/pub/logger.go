package pub

import (
	"fmt"
	"strings"

	tmlog "github.com/tendermint/tendermint/libs/log"
)

// saramaLogger routes the kafka client's own chatter into the node log at
// debug level, one record per call without sarama's trailing newlines.
type saramaLogger struct {
	tmlog.Logger
}

func (l saramaLogger) Print(v ...interface{}) {
	l.log(fmt.Sprint(v...))
}

func (l saramaLogger) Printf(format string, v ...interface{}) {
	l.log(fmt.Sprintf(format, v...))
}

func (l saramaLogger) Println(v ...interface{}) {
	l.log(fmt.Sprintln(v...))
}

func (l saramaLogger) log(msg string) {
	if msg = strings.TrimRight(msg, "\n"); msg != "" {
		l.Debug(msg)
	}
}
