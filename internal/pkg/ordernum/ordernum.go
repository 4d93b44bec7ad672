// Package ordernum issues the human-readable, externally visible order numbers.
package ordernum

import (
	"strings"

	"github.com/bwmarrin/snowflake"
)

const Prefix = "ORD-"

type Generator interface {
	Next() string
}

type SnowflakeGenerator struct {
	node *snowflake.Node
}

func NewSnowflakeGenerator(nodeID int64) (*SnowflakeGenerator, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, err
	}
	return &SnowflakeGenerator{node: node}, nil
}

// Next returns e.g. ORD-1A2B3C4D5E6F. Snowflake ids are time ordered, so
// numbers sort roughly by creation time.
func (g *SnowflakeGenerator) Next() string {
	return Prefix + strings.ToUpper(g.node.Generate().Base36())
}

func IsValid(s string) bool {
	if !strings.HasPrefix(s, Prefix) || len(s) <= len(Prefix) {
		return false
	}
	for _, r := range s[len(Prefix):] {
		if (r < '0' || r > '9') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}
