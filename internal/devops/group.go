package devops

// Groups function as a stack, so we keep track of the groups in a stack.
var groups = make([]*Group, 0)

// Opens a new group and adds it to the stack.
func OpenGroup(name string) *Group {
	newGroup := &Group{}
	groups = append(groups, newGroup)
	printf("##[group]%s\n", name)
	return newGroup
}

type Group struct{}

// Closes the group and removes all groups above it from the stack. Closing a
// group that is no longer open does nothing.
func (g *Group) Close() {
	if !g.isOpen() {
		return
	}

	for index := len(groups) - 1; index >= 0; index-- {
		last := groups[index]
		groups = groups[:index]
		printf("##[endgroup]\n")
		if last == g {
			break
		}
	}
}

func (g *Group) isOpen() bool {
	for _, group := range groups {
		if group == g {
			return true
		}
	}

	return false
}
