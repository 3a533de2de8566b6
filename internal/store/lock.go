package store

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// lockRetryDelay 等待文件锁时的重试间隔
const lockRetryDelay = 25 * time.Millisecond

// WriteLocker 可选能力：跨进程的写锁
//
// 同一份表可能同时被 serve 进程与 import 命令写入，进程内的 sync.Locker 彼此不可见；
// load -> merge -> save 期间必须持有该锁。
type WriteLocker interface {
	LockWrites(ctx context.Context) (unlock func(), err error)
}

// lockFile 在 path 上获取排他文件锁，ctx 取消时放弃等待
func lockFile(ctx context.Context, path string) (func(), error) {
	if err := ensureDir(filepath.Dir(path)); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}
	fl := flock.New(path)
	ok, err := fl.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("failed to lock %s: %w", path, err)
	}
	if !ok {
		return nil, fmt.Errorf("failed to lock %s", path)
	}
	return func() { _ = fl.Unlock() }, nil
}
