package main

import (
	"bytes"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigYAML = `
graph:
  links:
    - src: A
      dst: B
      src_port: 1
      dst_port: 1
      delay_micros: 1000
      bandwidth_bps: 1000000
    - src: B
      dst: A
      src_port: 1
      dst_port: 1
      delay_micros: 1000
      bandwidth_bps: 1000000
  clusters:
    - id: east
      nodes: [A]
commodities:
  - source: A
    sink: B
    demand: 10
`

func loadTestViper(t *testing.T, content string) *viper.Viper {
	t.Helper()
	tv := viper.New()
	tv.SetConfigType("yaml")
	require.NoError(t, tv.ReadConfig(bytes.NewBufferString(content)))
	return tv
}

func TestLoadGraph_InternsLinksAndClusters(t *testing.T) {
	tv := loadTestViper(t, testConfigYAML)

	storage, err := loadGraph(tv)
	require.NoError(t, err)

	assert.Len(t, storage.AllNodes(), 2)
	assert.Len(t, storage.AllLinks(), 2)

	a, err := findNode(storage, "A")
	require.NoError(t, err)
	assert.Equal(t, "east", storage.ClusterOf(a))
}

func TestLoadGraph_MissingGraphKeyFails(t *testing.T) {
	tv := loadTestViper(t, "commodities: []\n")
	_, err := loadGraph(tv)
	assert.ErrorIs(t, err, ErrNoConfigFile)
}

func TestLoadCommodities_ResolvesNodes(t *testing.T) {
	tv := loadTestViper(t, testConfigYAML)
	storage, err := loadGraph(tv)
	require.NoError(t, err)

	commodities, err := loadCommodities(tv, storage)
	require.NoError(t, err)
	require.Len(t, commodities, 1)
	assert.Equal(t, "A", commodities[0].Source.ID())
	assert.Equal(t, "B", commodities[0].Sink.ID())
	assert.Equal(t, 10.0, commodities[0].Demand)
}

func TestLoadCommodities_UnknownNodeFails(t *testing.T) {
	tv := loadTestViper(t, `
graph:
  links:
    - src: A
      dst: B
      src_port: 1
      dst_port: 1
      delay_micros: 1000
      bandwidth_bps: 1000000
commodities:
  - source: A
    sink: nonexistent
    demand: 1
`)
	storage, err := loadGraph(tv)
	require.NoError(t, err)

	_, err = loadCommodities(tv, storage)
	assert.ErrorIs(t, err, ErrUnknownNode)
}

func TestFindNode_UnknownNodeFails(t *testing.T) {
	tv := loadTestViper(t, testConfigYAML)
	storage, err := loadGraph(tv)
	require.NoError(t, err)

	_, err = findNode(storage, "nope")
	assert.ErrorIs(t, err, ErrUnknownNode)
}
