package catalog

// Default returns the compiled-in catalog, used when no catalog file is
// configured.
func Default() *Catalog {
	return build(catalogYAML{
		Sweets: []sweetYAML{
			{ID: "harissa-cream", NameAr: "هريسة القشطة", WidthCm: 4.0, WeightGrams: 190, Price: 1.0},
			{ID: "harissa-nuts", NameAr: "هريسة بالمكسرات", WidthCm: 5.5, WeightGrams: 225, Price: 1.25},
			{ID: "greek", NameAr: "يونانية", WidthCm: 5.0, WeightGrams: 220, Price: 1.5},
			{ID: "nuts", NameAr: "أصابع الجوز", WidthCm: 9.0, WeightGrams: 190, Price: 2.5},
			{ID: "ash-lotus", NameAr: "عش الهنا لوتس", WidthCm: 3.5, WeightGrams: 70, Price: 0.7},
			{ID: "ash-nutella", NameAr: "عش الهنا نوتيلا", WidthCm: 3.5, WeightGrams: 70, Price: 0.7},
			{ID: "cocoa-fingers", NameAr: "أصابع كاجو", WidthCm: 5.5, WeightGrams: 160, Price: 1.0},
			{ID: "harissa-nutella", NameAr: "هريسة نوتيلا", WidthCm: 4.25, WeightGrams: 150, Price: 1.0},
			{ID: "halawet-jibn", NameAr: "حلاوة الجبن", WidthCm: 4.0, WeightGrams: 190, Price: 1.0},
			{ID: "separator", NameAr: "فاصل", WidthCm: 0.5, WeightGrams: 0, Price: 0.05, Separator: true},
		},
		Containers: []containerYAML{
			{ID: "box-1", Kind: "box", NameAr: "علبة صغيرة", NameEn: "Small Box", HeightCm: 17, WidthCm: 30, BasePrice: 1.0},
			{ID: "box-2", Kind: "box", NameAr: "علبة وسط", NameEn: "Medium Box", HeightCm: 19.5, WidthCm: 33.5, BasePrice: 1.0},
			{ID: "box-3", Kind: "box", NameAr: "علبة جلد", NameEn: "Leather Box", HeightCm: 21.5, WidthCm: 38, BasePrice: 2.5},
			{ID: "tray-1", Kind: "tray", NameAr: "صحن صغير", NameEn: "Small Tray", HeightCm: 15, WidthCm: 21, BasePrice: 0},
			{ID: "tray-2", Kind: "tray", NameAr: "صحن وسط", NameEn: "Medium Tray", HeightCm: 20, WidthCm: 28, BasePrice: 0},
			{ID: "tray-3", Kind: "tray", NameAr: "صحن كبير", NameEn: "Large Tray", HeightCm: 24, WidthCm: 31, BasePrice: 0},
			{ID: "tray-4", Kind: "tray", NameAr: "صحن كبير جداً", NameEn: "XL Tray", HeightCm: 26.5, WidthCm: 34, BasePrice: 0},
		},
		Items: []itemYAML{
			{ID: "harissa-nuts", NameAr: "هريسة مكسرات", Category: "daily", PricePerKg: 5.50},
			{ID: "harissa-qashta", NameAr: "هريسة بالقشطة", Category: "daily", PricePerKg: 5.50},
			{ID: "halawet-jibn", NameAr: "حلاوة الجبن", Category: "daily", PricePerKg: 5.50},
			{ID: "warbat-qashta", NameAr: "وربات بالقشطة", Category: "daily", PricePerKg: 4.50},
			{ID: "harissa-plain", NameAr: "هريسة سادة", Category: "daily", PricePerKg: 4.50},
			{ID: "greek", NameAr: "يونانية", Category: "daily", PricePerKg: 6.50},
			{ID: "harissa-nutella", NameAr: "هريسة نوتيلا", Category: "daily", PricePerKg: 7.00},
			{ID: "cashew-nutella", NameAr: "أصابع كاجو بالنوتيلا", Category: "daily", PricePerKg: 6.50},
			{ID: "walnut-fingers", NameAr: "أصابع جوز", Category: "daily", PricePerKg: 7.50},
			{ID: "turkish-cake", NameAr: "كيكة تركية", Category: "daily", PricePerKg: 5.00},
			{ID: "osh-lotus", NameAr: "عش هنا لوتس", Category: "daily", PricePerKg: 10.00},
			{ID: "osh-nutella", NameAr: "عش هنا نوتيلا", Category: "daily", PricePerKg: 10.00},
			{ID: "tem-samaka", NameAr: "تم السمكة", Category: "daily", PricePerKg: 16.00},
			{ID: "barazek", NameAr: "برازق", Category: "dry", PricePerKg: 7.00},
			{ID: "ghraybeh", NameAr: "غريبة", Category: "dry", PricePerKg: 8.00},
			{ID: "maamoul", NameAr: "معمول بالتمر", Category: "dry", PricePerKg: 8.00},
			{ID: "mixed-dry", NameAr: "مشكل برازق معمول غريبة", Category: "dry", PricePerKg: 8.00},
			{ID: "giftbox-small", NameAr: "علبة مشكل صغيرة", Category: "giftbox", FixedWeightKg: 0.6, FixedPrice: 12.00},
			{ID: "giftbox-medium", NameAr: "علبة مشكل وسط", Category: "giftbox", FixedWeightKg: 0.85, FixedPrice: 17.00},
			{ID: "giftbox-large", NameAr: "علبة مشكل كبيرة هدايا", Category: "giftbox", FixedWeightKg: 1.0, FixedPrice: 22.00},
		},
		Weights: []weightYAML{
			{ID: "waqiya", NameAr: "وقية", WeightKg: 0.25},
			{ID: "half-kg", NameAr: "نصف كيلو", WeightKg: 0.5},
			{ID: "1-kg", NameAr: "كيلو", WeightKg: 1},
			{ID: "1.5-kg", NameAr: "كيلو ونصف", WeightKg: 1.5},
			{ID: "2-kg", NameAr: "2 كيلو", WeightKg: 2},
		},
	})
}
