package models

// Video es la fila persistida. El id lo elige el cliente, nunca la base de datos.
type Video struct {
	ID    int64  `gorm:"primaryKey;autoIncrement:false"`
	Name  string `gorm:"size:100;not null"`
	Views int64  `gorm:"not null"`
	Likes int64  `gorm:"not null"`
}

// TableName conserva el nombre de tabla de las bases de datos existentes
func (Video) TableName() string {
	return "video_model"
}

type VideoResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Views int64  `json:"views"`
	Likes int64  `json:"likes"`
}

func (v Video) ToResponse() VideoResponse {
	return VideoResponse{
		ID:    v.ID,
		Name:  v.Name,
		Views: v.Views,
		Likes: v.Likes,
	}
}

// VideoPatch lleva solo los campos enviados en un PATCH; nil significa "no tocar"
type VideoPatch struct {
	Name  *string
	Views *int64
	Likes *int64
}

func (p VideoPatch) Empty() bool {
	return p.Name == nil && p.Views == nil && p.Likes == nil
}

// Columns devuelve las columnas a actualizar. Se usa un map para que los
// valores cero (views = 0) también se escriban.
func (p VideoPatch) Columns() map[string]interface{} {
	cols := map[string]interface{}{}
	if p.Name != nil {
		cols["name"] = *p.Name
	}
	if p.Views != nil {
		cols["views"] = *p.Views
	}
	if p.Likes != nil {
		cols["likes"] = *p.Likes
	}
	return cols
}
