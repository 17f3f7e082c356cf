package input

import (
	"context"
	"fmt"

	"git.fiblab.net/general/common/v2/cache"
	"git.fiblab.net/general/common/v2/mongoutil"
	"git.fiblab.net/general/common/v2/protoutil"
	mapv2 "git.fiblab.net/sim/protos/v2/go/city/map/v2"
	"github.com/tsinghua-fib-lab/agentsociety-viewer/utils/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"google.golang.org/protobuf/proto"
)

// LoadMap 加载城市地图
// 功能：根据配置从文件或MongoDB加载地图protobuf
// 参数：c-输入配置，cacheDir-缓存目录（为空禁用缓存）
// 返回：地图数据；未配置地图来源时返回nil, nil，由调用方决定使用演示地图
// 算法说明：
// 1. 文件优先：配置了file则直接反序列化
// 2. 否则连接MongoDB，经缓存加载（缓存命中时不访问数据库）
// 3. 检查地图中车道ID不重复
func LoadMap(c config.Input, cacheDir string) (*mapv2.Map, error) {
	if c.Map.Empty() {
		log.Info("no map input configured")
		return nil, nil
	}
	var m *mapv2.Map
	if c.Map.File != "" {
		var pb mapv2.Map
		if err := protoutil.UnmarshalFromFile(&pb, c.Map.File); err != nil {
			return nil, fmt.Errorf("failed to load map from file %s: %w", c.Map.File, err)
		}
		m = &pb
	} else {
		if !preCheckCache(cacheDir) {
			cacheDir = ""
		}
		var client *mongo.Client
		if c.URI != "" {
			client = mongoutil.NewClient(c.URI)
			defer client.Disconnect(context.Background())
		} else if !c.Map.OnlyCache {
			return nil, fmt.Errorf("map %s.%s: mongo uri is required without only_cache", c.Map.DB, c.Map.Col)
		}
		var err error
		m, err = load[mapv2.Map](client, c.Map, cacheDir, nil)
		if err != nil {
			return nil, err
		}
	}
	if err := checkMap(m); err != nil {
		return nil, err
	}
	log.Infof("map loaded: %d lanes, %d junctions, %d aois", len(m.Lanes), len(m.Junctions), len(m.Aois))
	return m, nil
}

// load 从MongoDB或缓存中加载数据（泛型函数）
func load[T any, PT interface {
	proto.Message
	*T
}](
	client *mongo.Client,
	inputPath config.InputPath,
	cacheDir string,
	handler func(className string, pb any, rawBson bson.Raw) error,
	opts ...*options.FindOptions,
) (res PT, err error) {
	var downloadFunc func() PT
	if !inputPath.OnlyCache {
		coll := mongoutil.GetMongoColl(client, inputPath)
		downloadFunc = func() PT {
			pb, errs := mongoutil.DownloadPbFromMongo[T, PT](context.Background(), coll, nil, handler, opts...)
			if len(errs) > 0 {
				for _, err := range errs {
					log.Errorf("failed to download: %v", err)
				}
				log.Panicln("failed to download")
			}
			return pb
		}
	}
	log.Infof("start fetching from %s.%s", inputPath.DB, inputPath.Col)
	res, err = cache.LoadWithCache(cacheDir, inputPath, downloadFunc)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s.%s with cache: %w", inputPath.DB, inputPath.Col, err)
	}
	log.Infof("finish fetching from %s.%s", inputPath.DB, inputPath.Col)
	return res, nil
}
