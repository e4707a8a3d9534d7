package domain

import "github.com/google/uuid"

// FactionID、ProvinceID、UnitID 是不透明的唯一标识，可直接作为 map key。
type FactionID uuid.UUID
type ProvinceID uuid.UUID
type UnitID uuid.UUID

func NewFactionID() FactionID   { return FactionID(uuid.New()) }
func NewProvinceID() ProvinceID { return ProvinceID(uuid.New()) }
func NewUnitID() UnitID         { return UnitID(uuid.New()) }

func ParseFactionID(s string) (FactionID, error) {
	u, err := uuid.Parse(s)
	return FactionID(u), err
}

func ParseProvinceID(s string) (ProvinceID, error) {
	u, err := uuid.Parse(s)
	return ProvinceID(u), err
}

func ParseUnitID(s string) (UnitID, error) {
	u, err := uuid.Parse(s)
	return UnitID(u), err
}

func (id FactionID) String() string  { return uuid.UUID(id).String() }
func (id ProvinceID) String() string { return uuid.UUID(id).String() }
func (id UnitID) String() string     { return uuid.UUID(id).String() }

func (id FactionID) IsZero() bool  { return id == FactionID{} }
func (id ProvinceID) IsZero() bool { return id == ProvinceID{} }
func (id UnitID) IsZero() bool     { return id == UnitID{} }

// 文本编解码让 id 在 JSON 里是字符串，也能作为 JSON 对象的 key。

func (id FactionID) MarshalText() ([]byte, error)  { return uuid.UUID(id).MarshalText() }
func (id ProvinceID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }
func (id UnitID) MarshalText() ([]byte, error)     { return uuid.UUID(id).MarshalText() }

func (id *FactionID) UnmarshalText(b []byte) error  { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *ProvinceID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *UnitID) UnmarshalText(b []byte) error     { return (*uuid.UUID)(id).UnmarshalText(b) }
