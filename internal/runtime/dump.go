package runtime

import (
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/perch/pkg/domain"
)

const dumpIndent = "  "

// DumpTree produces the textual report of the committed host tree and the
// reconciler's work tree. The report is built incrementally and returned as
// one string so callers can emit it atomically; two calls with no
// intervening mutation produce byte-identical output.
func DumpTree(c *domain.Container, root *domain.WorkNode) string {
	var sb strings.Builder
	if root == nil {
		sb.WriteString("Nothing rendered yet.\n")
		return sb.String()
	}
	sb.WriteString("HOST INSTANCES:\n")
	writeHostNodes(&sb, c.Children, 1)
	sb.WriteString("WORK TREE:\n")
	writeWorkChain(&sb, root, 1)
	return sb.String()
}

// WriteDump emits the report to w in a single write, so it cannot interleave
// with other output on the same writer.
func WriteDump(w io.Writer, c *domain.Container, root *domain.WorkNode) error {
	_, err := io.WriteString(w, DumpTree(c, root))
	return err
}

func writeHostNodes(sb *strings.Builder, nodes []domain.Node, depth int) {
	for _, n := range nodes {
		writeIndent(sb, depth)
		switch x := n.(type) {
		case *domain.Instance:
			fmt.Fprintf(sb, "%s#%d\n", x.Type, x.ID())
			writeHostNodes(sb, x.Children, depth+1)
		case *domain.Text:
			sb.WriteString(x.Value)
			sb.WriteByte('\n')
		}
	}
}

// writeWorkChain renders a sibling chain: children before siblings, siblings
// in list order.
func writeWorkChain(sb *strings.Builder, w *domain.WorkNode, depth int) {
	for ; w != nil; w = w.Sibling {
		writeIndent(sb, depth)
		if w.Terminal() {
			writeWorkLeaf(sb, w.Leaf)
			continue
		}
		name := w.Type
		if name == "" {
			name = "[root]"
		}
		fmt.Fprintf(sb, "%s priority=%s", name, w.Priority)
		if w.PendingProps {
			sb.WriteString(" *pending*")
		}
		sb.WriteByte('\n')
		for _, u := range w.Updates {
			writeIndent(sb, depth+1)
			fmt.Fprintf(sb, "update replace=%t force=%t state=%v callback=%t\n",
				u.Replace, u.Force, u.State, u.Callback != nil)
		}
		if w.InProgress != nil {
			writeIndent(sb, depth+1)
			sb.WriteString("IN PROGRESS:\n")
			writeWorkChain(sb, w.InProgress, depth+2)
			writeIndent(sb, depth+1)
			sb.WriteString("CURRENT:\n")
			writeWorkChain(sb, w.Child, depth+2)
			continue
		}
		writeWorkChain(sb, w.Child, depth+1)
	}
}

func writeWorkLeaf(sb *strings.Builder, n domain.Node) {
	switch x := n.(type) {
	case *domain.Instance:
		fmt.Fprintf(sb, "%s#%d\n", x.Type, x.ID())
	case *domain.Text:
		fmt.Fprintf(sb, "%q\n", x.Value)
	}
}

func writeIndent(sb *strings.Builder, depth int) {
	for i := 0; i < depth; i++ {
		sb.WriteString(dumpIndent)
	}
}
