package dawg

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"unsafe"

	"github.com/edsrzf/mmap-go"
)

// ErrFormat - файл не похож на сериализованный двойной массив.
var ErrFormat = errors.New("dawg: повреждённый файл")

// DAWG - словарь переходов и, для словарей с перечислением, направляющий массив.
// Данные могут лежать в отображённом в память файле; тогда Close освобождает его.
type DAWG struct {
	dict  *Dictionary
	guide *Guide

	// Ссылка на mmap-объект, чтобы память оставалась доступной до Close.
	mmapFile mmap.MMap
}

// Dictionary возвращает словарь переходов.
func (d *DAWG) Dictionary() *Dictionary {
	return d.dict
}

// Guide возвращает направляющий массив или nil.
func (d *DAWG) Guide() *Guide {
	return d.guide
}

// Close освобождает отображение файла, если оно было.
// После Close обращаться к DAWG нельзя.
func (d *DAWG) Close() error {
	if d.mmapFile == nil {
		return nil
	}
	err := d.mmapFile.Unmap()
	d.mmapFile = nil
	return err
}

// Open отображает файл в память и разбирает его без копирования ячеек.
// withGuide указывает, что за словарём следует направляющий массив.
func Open(path string, withGuide bool) (*DAWG, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия файла %s: %w", path, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения атрибутов %s: %w", path, err)
	}
	if info.Size() == 0 {
		return nil, fmt.Errorf("%s: %w: пустой файл", path, ErrFormat)
	}

	// Файл не копируется в ОЗУ, ОС сама подгружает нужные страницы.
	mmapFile, err := mmap.Map(file, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("ошибка mmap.Map для %s: %w", path, err)
	}

	d, err := parse(mmapFile, withGuide, nativeLittleEndian)
	if err != nil {
		_ = mmapFile.Unmap()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	d.mmapFile = mmapFile
	return d, nil
}

// Read читает DAWG из потока целиком. Ячейки копируются в кучу Go.
func Read(r io.Reader, withGuide bool) (*DAWG, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения dawg: %w", err)
	}
	return parse(data, withGuide, false)
}

// FromBytes разбирает DAWG из буфера, копируя ячейки.
func FromBytes(data []byte, withGuide bool) (*DAWG, error) {
	return Read(bytes.NewReader(data), withGuide)
}

func parse(data []byte, withGuide, alias bool) (*DAWG, error) {
	units, rest, err := readUnits(data, alias)
	if err != nil {
		return nil, err
	}
	d := &DAWG{dict: NewDictionary(units)}
	if !withGuide {
		return d, nil
	}
	if len(rest) < 4 {
		return nil, fmt.Errorf("%w: нет направляющего массива", ErrFormat)
	}
	size := int(binary.LittleEndian.Uint32(rest))
	rest = rest[4:]
	if len(rest) < size*2 {
		return nil, fmt.Errorf("%w: направляющий массив обрезан (%d < %d)", ErrFormat, len(rest), size*2)
	}
	d.guide = NewGuide(rest[:size*2])
	return d, nil
}

func readUnits(data []byte, alias bool) ([]uint32, []byte, error) {
	if len(data) < 4 {
		return nil, nil, fmt.Errorf("%w: файл слишком мал для заголовка", ErrFormat)
	}
	size := int(binary.LittleEndian.Uint32(data))
	body := data[4:]
	if len(body) < size*4 {
		return nil, nil, fmt.Errorf("%w: массив ячеек обрезан (%d < %d)", ErrFormat, len(body), size*4)
	}
	raw := body[:size*4]
	if alias && uintptr(unsafe.Pointer(unsafe.SliceData(raw)))%4 == 0 {
		return bytesToSlice[uint32](raw), body[size*4:], nil
	}
	units := make([]uint32, size)
	for i := range units {
		units[i] = binary.LittleEndian.Uint32(raw[i*4:])
	}
	return units, body[size*4:], nil
}

// bytesToSlice - "небезопасная" функция, которая создаёт срез,
// указывающий на область байт, без копирования самих данных.
func bytesToSlice[T any](b []byte) []T {
	if len(b) == 0 {
		return nil
	}
	var t T
	size := int(unsafe.Sizeof(t))
	return unsafe.Slice((*T)(unsafe.Pointer(&b[0])), len(b)/size)
}

var nativeLittleEndian = func() bool {
	x := uint16(1)
	return *(*byte)(unsafe.Pointer(&x)) == 1
}()
