package game

import (
	"fmt"
	"log"

	"github.com/decker502/stickcatch/pkg/types"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// highScoreObject 最高分在 gdata 中的对象名，属性名为规则集名
const highScoreObject = "highscores"

// HighScoreRecord 单个规则集的成绩记录
type HighScoreRecord struct {
	Best        int `yaml:"best"`
	GamesPlayed int `yaml:"gamesPlayed"`
}

// HighScoreManager 按规则集保存最高分
// 对局本身从不存档，这里只记录结束时的最终得分
type HighScoreManager struct {
	gdataManager *gdata.Manager // 可为 nil（降级模式，仅内存）
	records      map[types.Variant]*HighScoreRecord
}

// NewHighScoreManager 创建最高分管理器并加载已有记录
// 单个记录损坏时记录日志并从零开始
func NewHighScoreManager(gdataManager *gdata.Manager) *HighScoreManager {
	hm := &HighScoreManager{
		gdataManager: gdataManager,
		records:      make(map[types.Variant]*HighScoreRecord),
	}

	for _, v := range []types.Variant{types.VariantSimple, types.VariantEnhanced} {
		record, err := hm.load(v)
		if err != nil {
			log.Printf("[HighScoreManager] Warning: %v (starting from zero)", err)
			record = &HighScoreRecord{}
		}
		hm.records[v] = record
	}

	return hm
}

// load 读取单个规则集的记录
func (hm *HighScoreManager) load(v types.Variant) (*HighScoreRecord, error) {
	if hm.gdataManager == nil || !hm.gdataManager.ObjectPropExists(highScoreObject, v.String()) {
		return &HighScoreRecord{}, nil
	}

	data, err := hm.gdataManager.LoadObjectProp(highScoreObject, v.String())
	if err != nil {
		return nil, fmt.Errorf("failed to load %s high score: %w", v, err)
	}

	var record HighScoreRecord
	if err := yaml.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s high score: %w", v, err)
	}
	return &record, nil
}

// Best 返回规则集的最高分
func (hm *HighScoreManager) Best(v types.Variant) int {
	if record, ok := hm.records[v]; ok {
		return record.Best
	}
	return 0
}

// GamesPlayed 返回规则集已结束的局数
func (hm *HighScoreManager) GamesPlayed(v types.Variant) int {
	if record, ok := hm.records[v]; ok {
		return record.GamesPlayed
	}
	return 0
}

// Record 记录一局的最终得分并立即保存
// 返回是否刷新了最高分
func (hm *HighScoreManager) Record(v types.Variant, score int) bool {
	record, ok := hm.records[v]
	if !ok {
		record = &HighScoreRecord{}
		hm.records[v] = record
	}

	record.GamesPlayed++
	newBest := score > record.Best
	if newBest {
		record.Best = score
	}

	if err := hm.save(v, record); err != nil {
		log.Printf("[HighScoreManager] Warning: %v", err)
	}
	return newBest
}

// save 保存单个规则集的记录，降级模式下不做任何事
func (hm *HighScoreManager) save(v types.Variant, record *HighScoreRecord) error {
	if hm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal %s high score: %w", v, err)
	}
	if err := hm.gdataManager.SaveObjectProp(highScoreObject, v.String(), data); err != nil {
		return fmt.Errorf("failed to save %s high score: %w", v, err)
	}
	return nil
}
