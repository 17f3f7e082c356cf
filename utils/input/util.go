package input

import (
	"fmt"
	"os"

	mapv2 "git.fiblab.net/sim/protos/v2/go/city/map/v2"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("module", "input")

// checkMap 检查地图数据的ID唯一性与引用完整性
func checkMap(m *mapv2.Map) error {
	laneIDs := make(map[int32]struct{}, len(m.Lanes))
	for _, l := range m.Lanes {
		if _, ok := laneIDs[l.Id]; ok {
			return fmt.Errorf("map has duplicated lane id %d", l.Id)
		}
		laneIDs[l.Id] = struct{}{}
	}
	for _, j := range m.Junctions {
		for _, id := range j.LaneIds {
			if _, ok := laneIDs[id]; !ok {
				return fmt.Errorf("junction %d refers to unknown lane %d", j.Id, id)
			}
		}
	}
	return nil
}

// preCheckCache 预检查缓存目录，决定是否启用缓存功能
func preCheckCache(cacheDir string) bool {
	if cacheDir == "" {
		log.Info("disable input cache")
		return false
	}
	if stat, err := os.Stat(cacheDir); err == nil && stat.IsDir() {
		log.Infof("enable input cache at %s", cacheDir)
		return true
	}
	log.Errorf("disable input cache because invalid dir %s (not exist or file)", cacheDir)
	return false
}
