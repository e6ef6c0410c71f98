package ast

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemberKind(t *testing.T) {
	members := []*Member{
		{Name: "foo"},
		{Name: "bar", Attribute: true, Readonly: true},
		{Name: "BAZ", Const: true},
		{Name: "qux"},
	}
	require.Equal(t, MemberOperation, members[0].Kind())
	require.Equal(t, MemberAttribute, members[1].Kind())
	require.Equal(t, MemberConstant, members[2].Kind())

	ops := MembersOf(members, MemberOperation)
	require.Len(t, ops, 2)
	require.Equal(t, "foo", ops[0].Name)
	require.Equal(t, "qux", ops[1].Name)
	require.Empty(t, MembersOf(nil, MemberConstant))
}

func TestAnnotationsFind(t *testing.T) {
	ann := Annotations{
		{Name: "Exposed", Value: "Window"},
		{Name: "PrimaryGlobal"},
		{Name: "Exposed", Value: "Worker"},
	}
	require.True(t, ann.Has("PrimaryGlobal"))
	require.False(t, ann.Has("NoInterfaceObject"))
	require.Equal(t, "Window", ann.Find("Exposed").Value)
	require.Nil(t, Annotations(nil).Find("Exposed"))
}
