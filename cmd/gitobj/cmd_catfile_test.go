package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/odvcencio/gitobj/pkg/object"
	"github.com/odvcencio/gitobj/pkg/repo"
	"github.com/stretchr/testify/require"
)

const helloHash = "b6fc4c620b67d95f953a5c1c1230aaab5db5a1b0"

func initWithHello(t *testing.T) (*repo.Repo, string) {
	t.Helper()
	dir := t.TempDir()
	r, err := repo.Init(dir)
	require.NoError(t, err)
	h, err := r.Store.Write(&object.Blob{Data: []byte("hello")})
	require.NoError(t, err)
	require.Equal(t, object.Hash(helloHash), h)
	return r, dir
}

func TestCatFilePrintsRawPayload(t *testing.T) {
	_, dir := initWithHello(t)
	restore := chdirForTest(t, dir)
	defer restore()

	stdout, _, err := runCmd(t, "cat-file", "blob", helloHash)
	require.NoError(t, err)
	require.Equal(t, "hello", stdout)
}

func TestCatFileFromSubdirectory(t *testing.T) {
	_, dir := initWithHello(t)
	sub := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	restore := chdirForTest(t, sub)
	defer restore()

	stdout, _, err := runCmd(t, "cat-file", "blob", helloHash)
	require.NoError(t, err)
	require.Equal(t, "hello", stdout)
}

func TestCatFileTypeMismatch(t *testing.T) {
	_, dir := initWithHello(t)
	restore := chdirForTest(t, dir)
	defer restore()

	stdout, _, err := runCmd(t, "cat-file", "commit", helloHash)
	require.ErrorIs(t, err, object.ErrTypeMismatch)
	require.Empty(t, stdout)
}

func TestCatFileUnknownType(t *testing.T) {
	_, dir := initWithHello(t)
	restore := chdirForTest(t, dir)
	defer restore()

	_, _, err := runCmd(t, "cat-file", "widget", helloHash)
	require.ErrorIs(t, err, object.ErrUnknownType)
}

func TestCatFileMissingObject(t *testing.T) {
	_, dir := initWithHello(t)
	restore := chdirForTest(t, dir)
	defer restore()

	stdout, _, err := runCmd(t, "cat-file", "blob", "0000000000000000000000000000000000000000")
	require.ErrorIs(t, err, object.ErrObjectNotFound)
	require.Empty(t, stdout)

	_, _, err = runCmd(t, "cat-file", "blob", "nothex")
	require.ErrorIs(t, err, object.ErrInvalidHash)
}

func TestCatFileTypeAndSize(t *testing.T) {
	_, dir := initWithHello(t)
	restore := chdirForTest(t, dir)
	defer restore()

	stdout, _, err := runCmd(t, "cat-file", "-t", helloHash)
	require.NoError(t, err)
	require.Equal(t, "blob\n", stdout)

	stdout, _, err = runCmd(t, "cat-file", "-s", helloHash)
	require.NoError(t, err)
	require.Equal(t, "5\n", stdout)

	_, _, err = runCmd(t, "cat-file", "-t", "-s", helloHash)
	require.Error(t, err)
}

func TestCatFilePrettyTree(t *testing.T) {
	r, dir := initWithHello(t)
	data, err := object.MarshalTree([]object.TreeEntry{
		{Mode: object.TreeModeFile, Name: "hello.txt", Hash: helloHash},
		{Mode: object.TreeModeDir, Name: "sub", Hash: object.HashObject(object.TypeTree, nil)},
	})
	require.NoError(t, err)
	treeHash, err := r.Store.Write(&object.Tree{Data: data})
	require.NoError(t, err)

	restore := chdirForTest(t, dir)
	defer restore()

	stdout, _, err := runCmd(t, "cat-file", "-p", string(treeHash))
	require.NoError(t, err)
	require.Equal(t,
		"100644 blob "+helloHash+"\thello.txt\n"+
			"040000 tree 4b825dc642cb6eb9a060e54bf8d69288fbee4904\tsub\n",
		stdout)
}

func TestCatFileOutsideRepository(t *testing.T) {
	dir := t.TempDir()
	restore := chdirForTest(t, dir)
	defer restore()

	_, _, err := runCmd(t, "cat-file", "blob", helloHash)
	require.Error(t, err)
}

func TestCatFileRejectsNewerFormat(t *testing.T) {
	r, dir := initWithHello(t)
	require.NoError(t, r.WriteConfig(&repo.Config{Core: repo.CoreConfig{RepositoryFormatVersion: 1}}))
	restore := chdirForTest(t, dir)
	defer restore()

	_, _, err := runCmd(t, "cat-file", "blob", helloHash)
	require.ErrorIs(t, err, repo.ErrUnsupportedFormatVersion)
}

func TestCatFileWarnsOnUnreadableConfig(t *testing.T) {
	r, dir := initWithHello(t)
	require.NoError(t, os.WriteFile(r.Path("config"), []byte("[remote \"origin\"]\n\turl = x\n"), 0o644))
	restore := chdirForTest(t, dir)
	defer restore()

	stdout, stderr, err := runCmd(t, "cat-file", "blob", helloHash)
	require.NoError(t, err)
	require.Equal(t, "hello", stdout)
	require.Contains(t, stderr, "ignoring unreadable repository config")
}
