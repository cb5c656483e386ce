package vision

// Параметры конвейера фиксированы и не зависят от содержимого изображения.
const (
	blurKernelSize     = 5   // ядро гауссова размытия 5×5, сигма вычисляется из размера
	thresholdBlockSize = 11  // окрестность 11×11 для локального порога
	thresholdOffset    = 2   // константа, вычитаемая из взвешенного среднего
	thresholdMaxValue  = 255 // значение белого пикселя
	morphKernelSize    = 2   // структурный элемент 2×2 для закрытия и открытия
)
