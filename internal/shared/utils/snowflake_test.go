package utils

import (
	"testing"
)

func TestIDGenerator_单调递增且不重复(t *testing.T) {
	g, err := NewIDGenerator(7)
	if err != nil {
		t.Fatal(err)
	}
	seen := make(map[int64]bool)
	var last int64
	for i := 0; i < 10000; i++ {
		id := g.Next()
		if id <= last {
			t.Fatalf("id 未递增 i=%d id=%d last=%d", i, id, last)
		}
		if seen[id] {
			t.Fatalf("重复 id=%d", id)
		}
		seen[id] = true
		last = id
		if NodeOf(id) != 7 {
			t.Fatalf("node=%d", NodeOf(id))
		}
	}
}

func TestIDGenerator_时钟回拨不回退(t *testing.T) {
	g, _ := NewIDGenerator(1)
	clock := idEpochMilli + 1000
	g.now = func() int64 { return clock }
	a := g.Next()
	clock -= 500
	b := g.Next()
	if b <= a {
		t.Fatalf("a=%d b=%d", a, b)
	}
}

func TestNewIDGenerator_节点越界(t *testing.T) {
	if _, err := NewIDGenerator(maxNodeID + 1); err == nil {
		t.Fatalf("期望越界报错")
	}
	if _, err := NewIDGenerator(-1); err == nil {
		t.Fatalf("期望越界报错")
	}
}

func TestNodeIDFromEnv(t *testing.T) {
	t.Setenv(NodeIDEnv, "")
	if n, err := NodeIDFromEnv(); err != nil || n != 1 {
		t.Fatalf("n=%d err=%v", n, err)
	}
	t.Setenv(NodeIDEnv, "12")
	if n, _ := NodeIDFromEnv(); n != 12 {
		t.Fatalf("n=%d", n)
	}
	t.Setenv(NodeIDEnv, "abc")
	if _, err := NodeIDFromEnv(); err == nil {
		t.Fatalf("期望解析失败")
	}
}
