package model

import (
	"encoding/gob"
	"io"
	"os"

	"github.com/YuminosukeSato/boostcv/pkg/errors"
)

// SaveModel はモデルをgob形式でファイルに保存する
//
// パラメータ:
//   - model: 保存するモデル（エクスポートされたフィールドのみ保存される）
//   - filename: 保存先のファイルパス
//
// 使用例:
//
//	err := model.SaveModel(res.Models[0], "fold_1.gob")
func SaveModel(model interface{}, filename string) (err error) {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "create %s", filename)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "close %s", filename)
		}
	}()

	return SaveModelToWriter(model, file)
}

// LoadModel はファイルからモデルを読み込む
//
// 使用例:
//
//	var m logistic.Model
//	err := model.LoadModel(&m, "fold_1.gob")
func LoadModel(model interface{}, filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return errors.Wrapf(err, "open %s", filename)
	}
	defer file.Close()

	return LoadModelFromReader(model, file)
}

// SaveModelToWriter はモデルをio.Writerに保存する
func SaveModelToWriter(model interface{}, w io.Writer) error {
	if err := gob.NewEncoder(w).Encode(model); err != nil {
		return errors.Wrap(err, "encode model")
	}
	return nil
}

// LoadModelFromReader はio.Readerからモデルを読み込む
func LoadModelFromReader(model interface{}, r io.Reader) error {
	if err := gob.NewDecoder(r).Decode(model); err != nil {
		return errors.Wrap(err, "decode model")
	}
	return nil
}
