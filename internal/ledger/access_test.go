package ledger

import (
	"testing"

	"github.com/adilhusain01/CrowdFunding/internal/model"
	"github.com/stretchr/testify/require"
)

func TestBootstrapGrantsBothRoles(t *testing.T) {
	db := openTestDB(t)
	l := New(db, &recordingTransferor{})
	require.NoError(t, l.Access.Bootstrap(adminAddr))

	ok, err := l.Access.HasRole(adminAddr, model.RoleAdmin)
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = l.Access.HasRole(adminAddr, model.RoleProjectCreator)
	require.NoError(t, err)
	require.True(t, ok)

	// 可重复执行
	require.NoError(t, l.Access.Bootstrap(adminAddr))

	require.ErrorIs(t, l.Access.Bootstrap(""), ErrInvalidArgument)
}

func TestGrantAndRevokeRole(t *testing.T) {
	db := openTestDB(t)
	l := New(db, &recordingTransferor{})
	require.NoError(t, l.Access.Bootstrap(adminAddr))

	// 非管理员授予角色
	err := l.Access.GrantRole(aliceAddr, bobAddr, model.RoleProjectCreator)
	require.ErrorIs(t, err, ErrPermissionDenied)

	// 未知角色
	err = l.Access.GrantRole(adminAddr, bobAddr, "superuser")
	require.ErrorIs(t, err, ErrInvalidArgument)

	require.NoError(t, l.Access.GrantRole(adminAddr, bobAddr, model.RoleProjectCreator))
	ok, err := l.Access.HasRole(bobAddr, model.RoleProjectCreator)
	require.NoError(t, err)
	require.True(t, ok)

	// 重复授予视为成功
	require.NoError(t, l.Access.GrantRole(adminAddr, bobAddr, model.RoleProjectCreator))

	// 撤销后权限随之失效
	require.NoError(t, l.Access.RevokeRole(adminAddr, bobAddr, model.RoleProjectCreator))
	ok, err = l.Access.HasRole(bobAddr, model.RoleProjectCreator)
	require.NoError(t, err)
	require.False(t, ok)

	_, err = l.Project.CreateProject(bobAddr, "t", "d", 100, 10)
	require.ErrorIs(t, err, ErrPermissionDenied)

	err = l.Access.RevokeRole(bobAddr, adminAddr, model.RoleAdmin)
	require.ErrorIs(t, err, ErrPermissionDenied)
}
