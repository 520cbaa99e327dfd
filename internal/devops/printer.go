package devops

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	mu  sync.Mutex
	out io.Writer = os.Stdout
)

// SetOutput redirects logging commands. A workload page talking to its parent
// over stdio must send them to stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = w
}

func printf(format string, a ...any) {
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintf(out, format, a...)
}

func LogError(msg string, a ...any) {
	printf("##vso[task.logissue type=error]%s\n", fmt.Sprintf(msg, a...))
}
