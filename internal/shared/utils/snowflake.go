package utils

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

// 战斗 id：41 位毫秒时间戳 | 10 位节点 | 12 位序号，十进制字符串对外。
const (
	// 2026-01-01 00:00:00 UTC
	idEpochMilli int64 = 1767225600000

	nodeBits uint8 = 10
	seqBits  uint8 = 12

	maxNodeID int64 = -1 ^ (-1 << nodeBits)
	maxSeq    int64 = -1 ^ (-1 << seqBits)

	nodeShift = seqBits
	timeShift = nodeBits + seqBits

	NodeIDEnv = "DOTWARS_NODE_ID"
)

type IDGenerator struct {
	mu     sync.Mutex
	nodeID int64
	lastTS int64
	seq    int64
	now    func() int64
}

func NewIDGenerator(nodeID int64) (*IDGenerator, error) {
	if nodeID < 0 || nodeID > maxNodeID {
		return nil, fmt.Errorf("id generator node out of range [0,%d]: %d", maxNodeID, nodeID)
	}
	return &IDGenerator{
		nodeID: nodeID,
		now:    func() int64 { return time.Now().UnixMilli() },
	}, nil
}

// NodeIDFromEnv 未设置时为 1。
func NodeIDFromEnv() (int64, error) {
	raw := strings.TrimSpace(os.Getenv(NodeIDEnv))
	if raw == "" {
		return 1, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", NodeIDEnv, err)
	}
	return n, nil
}

func (g *IDGenerator) Next() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	ts := g.now()
	if ts < g.lastTS {
		// 时钟回拨沿用上一毫秒，保证单调
		ts = g.lastTS
	}
	if ts == g.lastTS {
		g.seq = (g.seq + 1) & maxSeq
		if g.seq == 0 {
			for ts <= g.lastTS {
				ts = g.now()
			}
		}
	} else {
		g.seq = 0
	}
	g.lastTS = ts
	return ((ts - idEpochMilli) << timeShift) | (g.nodeID << nodeShift) | g.seq
}

func (g *IDGenerator) NextString() string {
	return strconv.FormatInt(g.Next(), 10)
}

// NodeOf 从 id 中取回节点号，排查跨节点问题用。
func NodeOf(id int64) int64 {
	return (id >> nodeShift) & maxNodeID
}
