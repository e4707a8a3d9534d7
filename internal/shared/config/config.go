package config

import (
	"os"
	"path/filepath"
)

// FindUpward 从 startDir 开始逐级向上查找 relPath，返回第一个存在的绝对路径。
//
// 约定：
// 1) relPath 为绝对路径时直接返回；
// 2) 否则从 startDir 向上查找，找不到返回 ok=false。
func FindUpward(startDir, relPath string) (string, bool) {
	if filepath.IsAbs(relPath) {
		return relPath, fileExist(relPath)
	}
	dir := startDir
	for {
		candidate := filepath.Join(dir, relPath)
		if fileExist(candidate) {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func fileExist(fileName string) bool {
	_, err := os.Stat(fileName)
	return err == nil
}
